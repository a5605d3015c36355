package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"everse/backend/libs/httpx"
)

type contextKey string

const identityKey contextKey = "identity"

// AccessTokenParam carries the JWT on websocket handshakes.
const AccessTokenParam = "access_token"

// Identity is the authenticated caller taken from the JWT.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// Authenticator validates HS256 tokens issued by auth-service.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns authenticator for secret.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Require rejects requests without a valid bearer token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return a.handler(next, true)
}

// Optional attaches the identity when a token is present. A malformed or expired token is
// still rejected.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return a.handler(next, false)
}

// RequireStream is Require for websocket upgrades. Browsers cannot set headers on a
// websocket handshake, so the token may also come from the access_token query parameter.
func (a *Authenticator) RequireStream(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			a.handler(next, true).ServeHTTP(w, r)
			return
		}
		token := r.URL.Query().Get(AccessTokenParam)
		if token == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "missing access token")
			return
		}
		id, err := a.parse(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (a *Authenticator) handler(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if required {
				httpx.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		id, err := a.parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func (a *Authenticator) parse(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenInvalidClaims
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("auth: unexpected claims type")
	}
	userID, err := extractUserID(claims)
	if err != nil {
		return Identity{}, err
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Identity{UserID: userID, Email: email, Role: role}, nil
}

func extractUserID(claims jwt.MapClaims) (int64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, fmt.Errorf("user_id not present")
	}
}

// RequireRole allows only identities with role. It must run after Require.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if id.Role != role {
				httpx.WriteError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller identity from request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
