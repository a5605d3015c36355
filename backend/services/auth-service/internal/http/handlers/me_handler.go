package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"everse/backend/libs/httpx"
	"everse/backend/services/auth-service/internal/service"
)

// UserIDHeader is set by the gateway after verifying the bearer token.
const UserIDHeader = "X-User-ID"

// NewMeHandler handles GET /auth/me for the caller identified by the gateway.
func NewMeHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || id <= 0 {
			httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := authService.Profile(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "user not found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "failed to load profile")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, user)
	}
}
