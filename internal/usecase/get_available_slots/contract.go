package get_available_slots

import (
	"context"
	"time"

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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время (UTC)
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
