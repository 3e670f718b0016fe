package create_recurring_rule

import (
	"errors"
	"net/http"

	"github.com/tutorlane/TL-BookingService/internal/api/handlers"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	rulesService "github.com/tutorlane/TL-BookingService/internal/service/rules"
	"github.com/tutorlane/TL-BookingService/internal/service/rules/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgUserNotFound       = "user not found"
	msgInvalidRolePair    = "recurring rule requires one student and one tutor"
	msgAccessDenied       = "you are not a party of this rule"
	msgDuplicateRule      = "an active rule already exists for this slot"
)

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorID = actorID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rulesService.ErrInvalidSchedule):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rulesService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rulesService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, rulesService.ErrInvalidRolePair):
			handlers.RespondBadRequest(w, msgInvalidRolePair)

		case errors.Is(err, rulesService.ErrDuplicateRule):
			handlers.RespondConflict(w, msgDuplicateRule)

		default:
			h.logger.Error("POST /rules - Failed: actor=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rules - Rule created: rule_id=%d, actor=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
