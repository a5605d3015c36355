package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/route-engine/internal/models"
	"everse/backend/services/route-engine/internal/service"
)

type routesResponse struct {
	Routes []models.Route `json:"routes"`
}

// NewRoutesHandler returns POST /routes handler.
func NewRoutesHandler(planner *service.Planner, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RouteRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		routes, err := planner.Plan(r.Context(), req)
		switch {
		case err == nil:
			httpx.WriteJSON(w, http.StatusOK, routesResponse{Routes: routes})
		case errors.Is(err, service.ErrInvalidInput):
			httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
		default:
			logger.Error("route planning failed", zap.Error(err))
			httpx.WriteError(w, http.StatusBadGateway, "route fetch failed")
		}
	}
}
