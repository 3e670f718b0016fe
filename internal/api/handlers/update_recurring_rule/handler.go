package update_recurring_rule

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
	msgInvalidRuleID      = "invalid rule id"
	msgInvalidStatus      = "invalid rule status"
	msgRuleNotFound       = "rule not found"
	msgAccessDenied       = "you are not a party of this rule"
	msgRuleCanceled       = "a canceled rule cannot be reactivated"
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

// Handle PATCH /api/v1/rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdateRuleStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorID = actorID

	result, err := h.service.UpdateStatus(r.Context(), ruleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rulesService.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, rulesService.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, rulesService.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rulesService.ErrRuleCanceled):
			handlers.RespondConflict(w, msgRuleCanceled)

		default:
			h.logger.Error("PATCH /rules/{id} - Failed for rule id=%d: %v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
