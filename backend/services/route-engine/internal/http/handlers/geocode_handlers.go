package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/route-engine/internal/service"
)

// GeocodeHandlers exposes forward and reverse geocoding.
type GeocodeHandlers struct {
	geocoder *service.Geocoder
	logger   *zap.Logger
}

// NewGeocodeHandlers builds handler set.
func NewGeocodeHandlers(geocoder *service.Geocoder, logger *zap.Logger) *GeocodeHandlers {
	return &GeocodeHandlers{geocoder: geocoder, logger: logger}
}

// Search handles GET /geocode/search?q=.
func (h *GeocodeHandlers) Search(w http.ResponseWriter, r *http.Request) {
	place, err := h.geocoder.Search(r.Context(), r.URL.Query().Get("q"))
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, place)
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "location not found")
	default:
		h.logger.Error("geocode search failed", zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, "geocoding failed")
	}
}

// Reverse handles GET /geocode/reverse?lat=&lng=.
func (h *GeocodeHandlers) Reverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		httpx.WriteError(w, http.StatusBadRequest, "lat and lng must be numbers")
		return
	}

	place, err := h.geocoder.Reverse(r.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
			return
		}
		h.logger.Error("reverse geocode failed", zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, "geocoding failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, place)
}
