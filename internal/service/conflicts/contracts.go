package conflicts

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetOccupyingByUsers(ctx context.Context, userA, userB int64, excludeID *int64) ([]*domain.Booking, error)
}

// RuleRepository интерфейс репозитория еженедельных правил
type RuleRepository interface {
	GetActiveByUsers(ctx context.Context, userA, userB int64) ([]*domain.RecurringRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
