package payment_webhook

import (
	"context"

	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	MarkPaymentSucceeded(ctx context.Context, id int64, req *models.PaymentPayload) (*models.BookingResponse, error)
	MarkPaymentFailed(ctx context.Context, id int64, req *models.PaymentPayload) (*models.BookingResponse, error)
	RefundPayment(ctx context.Context, id int64, actorID int64, req *models.PaymentPayload) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
