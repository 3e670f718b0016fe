package create_booking

import (
	"context"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
	"github.com/tutorlane/TL-BookingService/internal/service/eligibility"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	AppendEvent(ctx context.Context, event *domain.BookingEvent) (*domain.BookingEvent, error)
}

// EligibilityChecker интерфейс движка допусков
type EligibilityChecker interface {
	Compute(ctx context.Context, userA, userB int64) (*eligibility.Eligibility, error)
}

// ConflictChecker интерфейс детектора конфликтов расписания
type ConflictChecker interface {
	CheckWindow(ctx context.Context, req conflicts.CheckRequest) error
}

// IdentityClient интерфейс клиента identity-сервиса
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
