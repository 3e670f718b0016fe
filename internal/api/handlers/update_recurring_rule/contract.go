package update_recurring_rule

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/rules/models"
)

type RuleService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateRuleStatusRequest) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
