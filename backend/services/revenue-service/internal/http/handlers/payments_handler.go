package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"everse/backend/libs/httpx"
	"everse/backend/services/revenue-service/internal/repository"
	"everse/backend/services/revenue-service/internal/service"
)

const userIDHeader = "X-User-ID"

type createPaymentRequest struct {
	BookingID     string          `json:"bookingId"`
	StationName   string          `json:"stationName"`
	ConnectorType string          `json:"connectorType"`
	EnergyKWh     decimal.Decimal `json:"energyKwh"`
}

// NewCreatePaymentHandler returns POST /payments handler.
func NewCreatePaymentHandler(svc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPaymentRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		userID, _ := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)

		payment, err := svc.Create(r.Context(), service.CreatePaymentInput{
			BookingID:     req.BookingID,
			StationName:   req.StationName,
			ConnectorType: req.ConnectorType,
			EnergyKWh:     req.EnergyKWh,
			UserID:        userID,
		})
		if err != nil {
			writeServiceError(w, logger, err, "payment failed")
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, payment)
	}
}

func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, service.InputMessage(err))
	case errors.Is(err, repository.ErrDuplicatePayment):
		httpx.WriteError(w, http.StatusConflict, "booking already paid")
	case errors.Is(err, service.ErrNoTariff):
		httpx.WriteError(w, http.StatusServiceUnavailable, "no tariff configured")
	default:
		logger.Error(msg, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, msg)
	}
}
