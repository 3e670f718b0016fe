package get_eligibility

import (
	"net/http"
	"strconv"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
)

const (
	msgInvalidStudentID = "invalid studentId query parameter"
	msgInvalidTutorID   = "invalid tutorId query parameter"
)

// EligibilityResponse HTTP response model
type EligibilityResponse struct {
	CanCreateFree        bool `json:"canCreateFree"`
	CanCreatePaid        bool `json:"canCreatePaid"`
	HasActiveFreeBooking bool `json:"hasActiveFreeBooking"`
}

type Handler struct {
	service EligibilityService
	logger  Logger
}

func NewHandler(service EligibilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/eligibility?studentId=&tutorId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Compute(r.Context(), studentID, tutorID)
	if err != nil {
		h.logger.Error("GET /eligibility - Failed: student=%d, tutor=%d, error=%v", studentID, tutorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EligibilityResponse{
		CanCreateFree:        result.CanCreateFree,
		CanCreatePaid:        result.CanCreatePaid,
		HasActiveFreeBooking: result.HasActiveFreeBooking,
	})
}
