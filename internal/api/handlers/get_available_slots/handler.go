package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	getAvailableSlots "github.com/tutorlane/TL-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudentID = "invalid studentId query parameter"
	msgInvalidTutorID   = "invalid tutorId query parameter"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgInvalidExcludeID = "invalid excludeBookingId query parameter"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?studentId=&tutorId=&date=&bookingType=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	q := r.URL.Query()

	studentID, err := strconv.ParseInt(q.Get("studentId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	tutorID, err := strconv.ParseInt(q.Get("tutorId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	// Необязательный параметр: при подборе времени переноса текущее
	// бронирование не должно блокировать собственные слоты
	var excludeBookingID *int64
	if raw := q.Get("excludeBookingId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeBookingID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:           userID,
		StudentID:        studentID,
		TutorID:          tutorID,
		Date:             q.Get("date"),
		BookingType:      q.Get("bookingType"),
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /slots - Failed: student=%d, tutor=%d, error=%v", studentID, tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
