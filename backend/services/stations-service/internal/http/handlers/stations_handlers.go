package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"everse/backend/libs/geo"
	"everse/backend/libs/httpx"
	"everse/backend/services/stations-service/internal/models"
	"everse/backend/services/stations-service/internal/repository"
	"everse/backend/services/stations-service/internal/service"
)

const defaultNearbyRadiusKm = 10

// StationsHandlers exposes station CRUD endpoints.
type StationsHandlers struct {
	svc    *service.StationsService
	logger *zap.Logger
}

// NewStationsHandlers builds handler set.
func NewStationsHandlers(svc *service.StationsService, logger *zap.Logger) *StationsHandlers {
	return &StationsHandlers{svc: svc, logger: logger}
}

type createStationRequest struct {
	Name       string          `json:"name"`
	Location   models.Location `json:"location"`
	Types      []string        `json:"types"`
	Connectors []string        `json:"connectors"`
	Ports      int             `json:"ports"`
	PowerKW    float64         `json:"powerKw"`
}

// Create handles POST /stations.
func (h *StationsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createStationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st, err := h.svc.Create(r.Context(), service.CreateStationInput{
		Name:       req.Name,
		Location:   req.Location,
		Types:      req.Types,
		Connectors: req.Connectors,
		Ports:      req.Ports,
		PowerKW:    req.PowerKW,
		OwnerID:    userID(r),
	})
	if err != nil {
		h.fail(w, err, "failed to create station")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, st)
}

// List handles GET /stations.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, err, "failed to fetch stations")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stations)
}

// Get handles GET /stations/{id}.
func (h *StationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid station id")
		return
	}
	st, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "failed to fetch station")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, st)
}

// Delete handles DELETE /stations/{id}.
func (h *StationsHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "invalid station id")
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "failed to delete station")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Station deleted"})
}

// Nearby handles GET /stations/nearby?lat=&lng=&radius_km=&limit=.
func (h *StationsHandlers) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		httpx.WriteError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radius := float64(defaultNearbyRadiusKm)
	if raw := q.Get("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = v
	}
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	stations, err := h.svc.Nearby(r.Context(), geo.Point{Lat: lat, Lng: lng}, radius, limit)
	if err != nil {
		h.fail(w, err, "failed to search stations")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stations)
}

func (h *StationsHandlers) fail(w http.ResponseWriter, err error, fallback string) {
	writeServiceError(w, h.logger, err, fallback)
}

// writeServiceError maps service and repository errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
	case errors.Is(err, repository.ErrStationNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Station not found")
	case errors.Is(err, repository.ErrSlotTaken):
		httpx.WriteError(w, http.StatusConflict, "slot already booked")
	default:
		logger.Error(fallback, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid integer")
	}
	return v, nil
}
