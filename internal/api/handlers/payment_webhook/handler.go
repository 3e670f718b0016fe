package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "bookingId is required"
	msgUnknownStatus      = "unknown payment status"
	msgBookingNotFound    = "booking not found"
	msgNotPaidBooking     = "free sessions are not payable"
	msgInvalidTransition  = "booking status does not permit this payment update"
)

// WebhookRequest уведомление платежного провайдера
type WebhookRequest struct {
	BookingID   int64   `json:"bookingId"`
	Status      string  `json:"status"` // succeeded, failed, refunded
	ProviderRef string  `json:"providerRef"`
	AmountCents int64   `json:"amountCents"`
	Currency    string  `json:"currency"`
	Reason      *string `json:"reason,omitempty"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
// Маршрут без пользовательской аутентификации: подлинность вебхука проверяет
// API-гейтвей по подписи провайдера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	payload := &models.PaymentPayload{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ProviderRef: req.ProviderRef,
		Reason:      req.Reason,
	}

	var (
		result *models.BookingResponse
		err    error
	)

	switch req.Status {
	case "succeeded":
		result, err = h.service.MarkPaymentSucceeded(r.Context(), req.BookingID, payload)
	case "failed":
		result, err = h.service.MarkPaymentFailed(r.Context(), req.BookingID, payload)
	case "refunded":
		result, err = h.service.RefundPayment(r.Context(), req.BookingID, 0, payload)
	default:
		h.logger.Warn("POST /payments/webhook - Unknown status %q for booking id=%d", req.Status, req.BookingID)
		handlers.RespondBadRequest(w, msgUnknownStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrNotPaidBooking):
			handlers.RespondBadRequest(w, msgNotPaidBooking)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /payments/webhook - Failed for booking id=%d, status=%s: %v",
				req.BookingID, req.Status, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed %s for booking id=%d", req.Status, req.BookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
