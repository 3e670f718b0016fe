package cancel_booking

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
