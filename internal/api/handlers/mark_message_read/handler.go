package mark_message_read

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	messagesService "github.com/tutorlane/TL-BookingService/internal/service/messages"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgInvalidMessageID = "invalid message id"
	msgBookingNotFound  = "booking not found"
	msgMessageNotFound  = "message not found"
	msgAccessDenied     = "you are not a participant of this booking"
)

type Handler struct {
	service MessageService
	logger  Logger
}

func NewHandler(service MessageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/messages/{messageId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	messageID, err := handlers.PathInt64(r, "messageId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidMessageID)
		return
	}

	result, err := h.service.MarkRead(r.Context(), bookingID, messageID, userID)
	if err != nil {
		switch {
		case errors.Is(err, messagesService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, messagesService.ErrMessageNotFound):
			handlers.RespondNotFound(w, msgMessageNotFound)

		case errors.Is(err, messagesService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /bookings/{id}/messages/{messageId}/read - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
