package bookings

import (
	"context"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetConfirmedStartedBefore(ctx context.Context, deadline time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, lastActionBy int64) error
	UpdateSchedule(ctx context.Context, id int64, startsAt time.Time, status domain.BookingStatus, lastActionBy int64) error
	AppendEvent(ctx context.Context, event *domain.BookingEvent) (*domain.BookingEvent, error)
	ListEvents(ctx context.Context, bookingID int64) ([]domain.BookingEvent, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
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
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
