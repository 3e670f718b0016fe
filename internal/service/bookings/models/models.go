package models

import (
	"errors"

	"github.com/tutorlane/TL-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
}

// ReschedulePayload параметры переноса
type ReschedulePayload struct {
	ActorID     int64
	NewStartsAt int64 // UTC epoch milliseconds
}

// PaymentPayload параметры платежной операции
type PaymentPayload struct {
	AmountCents int64
	Currency    string
	ProviderRef string
	Reason      *string
}

// Response модели

// EventResponse одно событие истории бронирования
type EventResponse struct {
	ID           int64                  `json:"id"`
	Type         string                 `json:"type"`
	ActingUserID int64                  `json:"actingUserId"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Timestamp    int64                  `json:"timestamp"` // UTC epoch milliseconds
}

// BookingResponse бронирование на границе API
// Все временные поля — UTC epoch milliseconds
type BookingResponse struct {
	ID              int64           `json:"id"`
	FromUserID      int64           `json:"fromUserId"`
	ToUserID        int64           `json:"toUserId"`
	Timestamp       int64           `json:"timestamp"`
	EndTimestamp    int64           `json:"endTimestamp"`
	BookingType     string          `json:"bookingType"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	LastActionBy    int64           `json:"lastActionByUserId"`
	RecurringRuleID *int64          `json:"recurringRuleId,omitempty"`
	Events          []EventResponse `json:"events,omitempty"`
	CreatedAt       int64           `json:"createdAt"`
	UpdatedAt       int64           `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// UserResponse участник бронирования (данные identity-сервиса)
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParticipantsResponse ответ проверки участника для выдачи видео-сессии
type ParticipantsResponse struct {
	Booking *BookingResponse `json:"booking"`
	Tutor   UserResponse     `json:"tutor"`
	Student UserResponse     `json:"student"`
}

// FromDomainBooking конвертирует доменную модель в ответ API
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		FromUserID:      b.FromUserID,
		ToUserID:        b.ToUserID,
		Timestamp:       b.StartsAt.UnixMilli(),
		EndTimestamp:    b.EndsAt().UnixMilli(),
		BookingType:     string(b.BookingType),
		DurationMinutes: domain.SessionDurationMinutes(b.BookingType),
		Status:          string(b.Status),
		LastActionBy:    b.LastActionBy,
		RecurringRuleID: b.RecurringRuleID,
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
	}

	for _, e := range b.Events {
		resp.Events = append(resp.Events, EventResponse{
			ID:           e.ID,
			Type:         string(e.Type),
			ActingUserID: e.ActingUserID,
			Metadata:     e.Metadata,
			Timestamp:    e.CreatedAt.UnixMilli(),
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список доменных моделей в ответ API
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}

// FromDomainUser конвертирует доменного пользователя в ответ API
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ToDomainBookingStatus валидирует и конвертирует статус из строки
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusPending,
		domain.StatusAwaitingPayment,
		domain.StatusProcessingPayment,
		domain.StatusConfirmed,
		domain.StatusAwaitingReschedule,
		domain.StatusCompleted,
		domain.StatusCanceled,
		domain.StatusRejected:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}
