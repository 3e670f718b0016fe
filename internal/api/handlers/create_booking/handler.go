package create_booking

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
	createBooking "github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgUserNotFound        = "user not found"
	msgInvalidRolePair     = "booking requires one student and one tutor"
	msgAccessDenied        = "you are not a participant of this booking"
	msgFreeSessionPending  = "a free introductory session is already in progress with this tutor"
	msgFreeSessionUsed     = "the free introductory session with this tutor has already been used"
	msgFreeSessionRequired = "complete a free introductory session with this tutor first"
	msgPastTime            = "booking time must be in the future"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actorID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: from=%d, to=%d", req.FromUserID, req.ToUserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrInvalidRolePair):
			h.logger.Warn("POST /bookings - Invalid role pair: from=%d, to=%d", req.FromUserID, req.ToUserID)
			handlers.RespondBadRequest(w, msgInvalidRolePair)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Access denied: actor=%d", actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createBooking.ErrFreeSessionPending):
			handlers.RespondConflict(w, msgFreeSessionPending)

		case errors.Is(err, createBooking.ErrFreeSessionUsed):
			handlers.RespondConflict(w, msgFreeSessionUsed)

		case errors.Is(err, createBooking.ErrFreeSessionRequired):
			handlers.RespondConflict(w, msgFreeSessionRequired)

		case errors.Is(err, conflicts.ErrRecurringConflict), errors.Is(err, conflicts.ErrBookingOverlap):
			// Текст содержит, чья сторона занята и локальное (UK) время конфликта
			h.logger.Warn("POST /bookings - Schedule conflict: %v", err)
			handlers.RespondConflict(w, err.Error())

		case errors.Is(err, conflicts.ErrPastTime):
			handlers.RespondBadRequest(w, msgPastTime)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: actor=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, actor=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
