package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/revenue-service/internal/service"
)

// TariffHandlers exposes the active tariff.
type TariffHandlers struct {
	svc    *service.TariffService
	logger *zap.Logger
}

// NewTariffHandlers builds handler set.
func NewTariffHandlers(svc *service.TariffService, logger *zap.Logger) *TariffHandlers {
	return &TariffHandlers{svc: svc, logger: logger}
}

// Get handles GET /tariffs/active.
func (h *TariffHandlers) Get(w http.ResponseWriter, r *http.Request) {
	tariff, err := h.svc.ActiveTariff(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to load tariff")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tariff)
}

// Set handles PUT /tariffs/active.
func (h *TariffHandlers) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string          `json:"name"`
		PricePerKWh decimal.Decimal `json:"pricePerKwh"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tariff, err := h.svc.SetActive(r.Context(), req.Name, req.PricePerKWh)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to update tariff")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tariff)
}
