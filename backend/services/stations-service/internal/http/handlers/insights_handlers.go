package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/stations-service/internal/models"
	"everse/backend/services/stations-service/internal/service"
)

// NewMaintenanceHandler returns GET /maintenance handler.
func NewMaintenanceHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := svc.Maintenance(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "failed to compute maintenance")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, statuses)
	}
}

// NewMarkServicedHandler returns PUT /stations/{id}/service handler.
func NewMarkServicedHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	type request struct {
		Date string `json:"date"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid station id")
			return
		}
		var req request
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		var at time.Time
		if req.Date != "" {
			parsed, err := time.Parse(models.DateLayout, req.Date)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			at = parsed
		}

		status, err := svc.MarkServiced(r.Context(), id, at)
		if err != nil {
			writeServiceError(w, logger, err, "failed to record service")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, status)
	}
}

// NewDemandHandler returns GET /demand handler.
func NewDemandHandler(svc *service.InsightsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := svc.Demand(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "failed to compute demand")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, points)
	}
}

// NewPlacementHandler returns GET /placement/suggestions?k=&limit= handler.
func NewPlacementHandler(svc *service.PlacementService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		k, errK := intParam(q.Get("k"))
		limit, errLimit := intParam(q.Get("limit"))
		if errK != nil || errLimit != nil {
			httpx.WriteError(w, http.StatusBadRequest, "k and limit must be non-negative integers")
			return
		}

		res, err := svc.Suggest(r.Context(), k, limit)
		if err != nil {
			writeServiceError(w, logger, err, "failed to compute placement")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}
