package initiate_payment

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidAmount      = "amountCents must be positive"
	msgInvalidProviderRef = "providerRef is required"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "you are not a participant of this booking"
	msgPayerOnly          = "only the paying student can initiate payment"
	msgNotPaidBooking     = "free sessions are not payable"
	msgInvalidTransition  = "booking is not awaiting payment"
)

// InitiatePaymentRequest HTTP request model
type InitiatePaymentRequest struct {
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	ProviderRef string `json:"providerRef"`
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

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req InitiatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.AmountCents <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAmount)
		return
	}
	if req.ProviderRef == "" {
		handlers.RespondBadRequest(w, msgInvalidProviderRef)
		return
	}
	if req.Currency == "" {
		req.Currency = "GBP"
	}

	result, err := h.service.InitiatePayment(r.Context(), bookingID, actorID, &models.PaymentPayload{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		ProviderRef: req.ProviderRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrPayerOnly):
			handlers.RespondForbidden(w, msgPayerOnly)

		case errors.Is(err, bookingsService.ErrNotPaidBooking):
			handlers.RespondBadRequest(w, msgNotPaidBooking)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
