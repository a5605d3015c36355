package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/revenue-service/internal/service"
)

// NewStationsRevenueHandler returns GET /revenue/stations handler.
func NewStationsRevenueHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations, err := svc.Stations(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "failed to load revenue")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, stations)
	}
}

// NewStationReportHandler returns GET /revenue/stations/{name} handler.
func NewStationReportHandler(svc *service.ReportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		months := 0
		if raw := r.URL.Query().Get("months"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				httpx.WriteError(w, http.StatusBadRequest, "months must be a positive integer")
				return
			}
			months = n
		}

		report, err := svc.Station(r.Context(), r.PathValue("name"), months)
		if err != nil {
			writeServiceError(w, logger, err, "failed to build revenue report")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, report)
	}
}
