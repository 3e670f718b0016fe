package get_eligibility

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/eligibility"
)

type EligibilityService interface {
	Compute(ctx context.Context, userA, userB int64) (*eligibility.Eligibility, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
