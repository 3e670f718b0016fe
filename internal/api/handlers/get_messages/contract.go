package get_messages

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/messages/models"
)

type MessageService interface {
	List(ctx context.Context, bookingID int64, userID int64) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
