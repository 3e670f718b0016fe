package domain

import "time"

// EventType тип события в истории бронирования
type EventType string

const (
	EventCreated           EventType = "created"
	EventAccepted          EventType = "accepted"
	EventRejected          EventType = "rejected"
	EventRescheduled       EventType = "rescheduled"
	EventCanceled          EventType = "canceled"
	EventCompleted         EventType = "completed"
	EventPaymentInitiated  EventType = "payment_initiated"
	EventPaymentSucceeded  EventType = "payment_succeeded"
	EventPaymentFailed     EventType = "payment_failed"
	EventPaymentRefunded   EventType = "payment_refunded"
)

// BookingEvent одна запись истории действий бронирования.
// События только добавляются и никогда не изменяются — это единственный
// источник информации "кто что сделал и когда"
type BookingEvent struct {
	ID           int64
	BookingID    int64
	Type         EventType
	ActingUserID int64

	// Metadata детали перехода: для reschedule — oldTime/newTime/proposedBy,
	// для платежных событий — providerRef/amount/currency и т.п.
	Metadata map[string]interface{}

	CreatedAt time.Time
}
