package accept_booking

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID  = "invalid booking id"
	msgBookingNotFound   = "booking not found"
	msgAccessDenied      = "you are not a participant of this booking"
	msgNotYourTurn       = "the other party must respond to this booking"
	msgInvalidTransition = "booking status does not permit accepting"
)

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

// Handle PATCH /api/v1/bookings/{bookingId}/accept
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

	result, err := h.service.Accept(r.Context(), bookingID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrNotYourTurn):
			handlers.RespondConflict(w, msgNotYourTurn)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/accept - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
