package send_message

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	messagesService "github.com/tutorlane/TL-BookingService/internal/service/messages"
	"github.com/tutorlane/TL-BookingService/internal/service/messages/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgEmptyText          = "message text is required"
	msgBookingNotFound    = "booking not found"
	msgAccessDenied       = "you are not a participant of this booking"
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

// Handle POST /api/v1/bookings/{bookingId}/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SenderID = senderID

	result, err := h.service.Send(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, messagesService.ErrEmptyText):
			handlers.RespondBadRequest(w, msgEmptyText)

		case errors.Is(err, messagesService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, messagesService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("POST /bookings/{id}/messages - Failed for booking id=%d: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
