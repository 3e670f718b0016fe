package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidTimestamp   = "newTimestamp is required"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "you are not a participant of this booking"
	msgInvalidTransition  = "booking status does not permit rescheduling"
	msgPastTime           = "new booking time must be in the future"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewTimestamp int64 `json:"newTimestamp"` // UTC epoch milliseconds
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

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
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

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.NewTimestamp <= 0 {
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.service.Reschedule(r.Context(), bookingID, &models.ReschedulePayload{
		ActorID:     actorID,
		NewStartsAt: req.NewTimestamp,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, conflicts.ErrRecurringConflict), errors.Is(err, conflicts.ErrBookingOverlap):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Schedule conflict: %v", err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, conflicts.ErrPastTime):
			handlers.RespondBadRequest(w, msgPastTime)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
