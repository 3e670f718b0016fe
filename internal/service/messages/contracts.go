package messages

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/domain"
)

// MessageRepository интерфейс репозитория сообщений
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	MarkRead(ctx context.Context, messageID, userID int64) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен только для проверки участия в чате
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
