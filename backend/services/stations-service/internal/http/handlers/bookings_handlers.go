package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/stations-service/internal/service"
)

// BookingsHandlers exposes booking endpoints.
type BookingsHandlers struct {
	svc    *service.BookingsService
	logger *zap.Logger
}

// NewBookingsHandlers builds handler set.
func NewBookingsHandlers(svc *service.BookingsService, logger *zap.Logger) *BookingsHandlers {
	return &BookingsHandlers{svc: svc, logger: logger}
}

type createBookingRequest struct {
	StationName string    `json:"stationName"`
	Slot        string    `json:"slot"`
	Date        string    `json:"date"`
	Email       string    `json:"email"`
	Timestamp   time.Time `json:"timestamp"`
}

// Create handles POST /bookings. The authenticated email wins over the body.
func (h *BookingsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	email := strings.TrimSpace(r.Header.Get(userEmailHeader))
	if email == "" {
		email = req.Email
	}

	b, err := h.svc.Create(r.Context(), service.CreateBookingInput{
		StationName: req.StationName,
		Slot:        req.Slot,
		Date:        req.Date,
		Email:       email,
		UserID:      userID(r),
		Timestamp:   req.Timestamp,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create booking")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

// List handles GET /bookings/{stationName}/{date}.
func (h *BookingsHandlers) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context(), r.PathValue("stationName"), r.PathValue("date"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to fetch bookings")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bookings)
}

// Availability handles GET /bookings/{stationName}/{date}/availability.
func (h *BookingsHandlers) Availability(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.Availability(r.Context(), r.PathValue("stationName"), r.PathValue("date"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to fetch availability")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stationName": r.PathValue("stationName"),
		"date":        r.PathValue("date"),
		"slots":       slots,
	})
}
