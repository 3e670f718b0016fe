package domain

import "time"

// BookingType represents the type of a session
type BookingType string

const (
	// TypeFree вводная бесплатная сессия (15 минут)
	TypeFree BookingType = "free"
	// TypePaid обычная платная сессия (60 минут)
	TypePaid BookingType = "paid"
)

// Valid проверяет, что тип бронирования известен
func (t BookingType) Valid() bool {
	return t == TypeFree || t == TypePaid
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusAwaitingPayment    BookingStatus = "awaiting_payment"
	StatusProcessingPayment  BookingStatus = "processing_payment"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusAwaitingReschedule BookingStatus = "awaiting_reschedule"
	StatusCompleted          BookingStatus = "completed"
	StatusCanceled           BookingStatus = "canceled"
	StatusRejected           BookingStatus = "rejected"
)

// Booking represents a scheduled session between a student and a tutor
type Booking struct {
	ID int64

	// FromUserID всегда студент, ToUserID всегда репетитор,
	// независимо от того, кто создал бронирование
	FromUserID int64
	ToUserID   int64

	// StartsAt момент начала сессии (UTC)
	StartsAt time.Time

	BookingType BookingType
	Status      BookingStatus

	// LastActionBy пользователь, совершивший последнее действие;
	// на pending/awaiting_reschedule отвечать должна другая сторона
	LastActionBy int64

	// RecurringRuleID заполняется, если бронирование создано материализатором
	RecurringRuleID *int64

	// Events история действий в хронологическом порядке (append-only)
	Events []BookingEvent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCanceled || b.Status == StatusRejected
}

// OccupiesSlot returns true if the booking holds its time slot
// (любой незавершённый статус резервирует время обеих сторон)
func (b *Booking) OccupiesSlot() bool {
	switch b.Status {
	case StatusPending, StatusAwaitingReschedule, StatusAwaitingPayment, StatusProcessingPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}

// IsParticipant returns true if the user is a party of the booking
func (b *Booking) IsParticipant(userID int64) bool {
	return b.FromUserID == userID || b.ToUserID == userID
}

// OtherParticipant возвращает вторую сторону бронирования
func (b *Booking) OtherParticipant(userID int64) int64 {
	if b.FromUserID == userID {
		return b.ToUserID
	}
	return b.FromUserID
}

// Duration возвращает длительность сессии по типу бронирования
func (b *Booking) Duration() time.Duration {
	return SessionDuration(b.BookingType)
}

// EndsAt возвращает момент окончания сессии (UTC)
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt.Add(b.Duration())
}

// SessionDuration длительность сессии по типу: free — 15 минут, paid — 60
func SessionDuration(t BookingType) time.Duration {
	return time.Duration(SessionDurationMinutes(t)) * time.Minute
}

// SessionDurationMinutes длительность сессии в минутах
func SessionDurationMinutes(t BookingType) int {
	if t == TypeFree {
		return FreeSessionMinutes
	}
	return PaidSessionMinutes
}

// SessionEnd возвращает конец сессии типа t, начавшейся в start
func SessionEnd(start time.Time, t BookingType) time.Time {
	return start.Add(SessionDuration(t))
}
