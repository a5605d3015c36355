package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/assist-service/internal/models"
	"everse/backend/services/assist-service/internal/service"
)

const userIDHeader = "X-User-ID"

// EmergencyHandlers exposes the assistance request endpoints.
type EmergencyHandlers struct {
	svc    *service.EmergencyService
	logger *zap.Logger
}

// NewEmergencyHandlers builds handler set.
func NewEmergencyHandlers(svc *service.EmergencyService, logger *zap.Logger) *EmergencyHandlers {
	return &EmergencyHandlers{svc: svc, logger: logger}
}

type createRequest struct {
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	CarModel      string   `json:"carModel"`
	ChargerType   string   `json:"chargerType"`
	RequesterName string   `json:"requesterName"`
	Phone         string   `json:"phone"`
	BatteryLevel  *int     `json:"batteryLevel"`
	Priority      string   `json:"priority"`
}

// Create handles POST /emergency.
func (h *EmergencyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	requesterID, _ := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)

	created, err := h.svc.Create(r.Context(), service.CreateInput{
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		CarModel:      req.CarModel,
		ChargerType:   req.ChargerType,
		RequesterName: req.RequesterName,
		Phone:         req.Phone,
		BatteryLevel:  req.BatteryLevel,
		Priority:      req.Priority,
		RequesterID:   requesterID,
	})
	if err != nil {
		h.fail(w, err, "failed to create emergency request")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

// List handles GET /emergency?status=&q=.
func (h *EmergencyHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.svc.List(r.Context(), models.Filter{Status: q.Get("status"), Query: q.Get("q")})
	if err != nil {
		h.fail(w, err, "failed to list emergency requests")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, requests)
}

// Stats handles GET /emergency/stats.
func (h *EmergencyHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.fail(w, err, "failed to count emergency requests")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// UpdateStatus handles PATCH /emergency/{id}/status.
func (h *EmergencyHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		h.fail(w, err, "failed to update emergency request")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, updated)
}

func (h *EmergencyHandlers) fail(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "emergency request not found")
	case errors.Is(err, service.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "status transition not allowed")
	default:
		h.logger.Error(msg, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, msg)
	}
}
