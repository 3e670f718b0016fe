package create_booking

import (
	createBooking "github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FromUserID  int64  `json:"fromUserId"`
	ToUserID    int64  `json:"toUserId"`
	Timestamp   int64  `json:"timestamp"` // UTC epoch milliseconds
	BookingType string `json:"bookingType"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64) *createBooking.Request {
	return &createBooking.Request{
		ActorID:        actorID,
		FromUserID:     r.FromUserID,
		ToUserID:       r.ToUserID,
		StartTimestamp: r.Timestamp,
		BookingType:    r.BookingType,
	}
}
