package handlers

import (
	"errors"
	"net/http"

	"everse/backend/libs/httpx"
	"everse/backend/services/auth-service/internal/models"
	"everse/backend/services/auth-service/internal/service"
)

// NewSignupHandler returns HTTP handler for registration endpoint.
func NewSignupHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		models.Profile
	}
	type response struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		user, err := authService.Signup(r.Context(), service.SignupInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			Profile:  req.Profile,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidInput):
				httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
			case errors.Is(err, service.ErrEmailInUse):
				httpx.WriteError(w, http.StatusConflict, "email already registered")
			default:
				httpx.WriteError(w, http.StatusInternalServerError, "failed to create user")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, response{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
	}
}
