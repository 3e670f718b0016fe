package mark_message_read

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/messages/models"
)

type MessageService interface {
	MarkRead(ctx context.Context, bookingID, messageID, userID int64) (*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
