package materialize_rules

import (
	"context"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
)

// RuleRepository интерфейс репозитория еженедельных правил
type RuleRepository interface {
	ListActive(ctx context.Context) ([]*domain.RecurringRule, error)
	StampMaterialized(ctx context.Context, id int64, at time.Time) error
}

// BookingCreator интерфейс создания бронирований.
// Материализатор создает бронирования через обычный путь создания:
// допуск пары и конфликты расписания проверяются так же, как для
// бронирований, созданных вручную
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
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
