package handlers

import (
	"errors"
	"net/http"
	"time"

	"everse/backend/libs/httpx"
	"everse/backend/services/auth-service/internal/service"
)

// NewLoginHandler handles POST /auth/login.
func NewLoginHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	type response struct {
		Token     string    `json:"token"`
		TokenType string    `json:"token_type"`
		ExpiresAt time.Time `json:"expires_at"`
		Role      string    `json:"role"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		session, err := authService.Login(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "failed to login")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, response{
			Token:     session.Token,
			TokenType: "Bearer",
			ExpiresAt: session.ExpiresAt,
			Role:      session.User.Role,
		})
	}
}
