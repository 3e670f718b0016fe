package models

import "github.com/tutorlane/TL-BookingService/internal/domain"

// CreateRuleRequest запрос на создание еженедельного правила
type CreateRuleRequest struct {
	ActorID    int64
	FromUserID int64 `json:"fromUserId"`
	ToUserID   int64 `json:"toUserId"`
	DayOfWeek  int   `json:"dayOfWeek"`
	HourUTC    int   `json:"hourUtc"`
	MinuteUTC  int   `json:"minuteUtc"`
}

// UpdateRuleStatusRequest запрос на смену статуса правила
type UpdateRuleStatusRequest struct {
	ActorID int64
	Status  string `json:"status"`
}

// RuleResponse еженедельное правило в ответе API
type RuleResponse struct {
	ID                   int64  `json:"id"`
	FromUserID           int64  `json:"fromUserId"`
	ToUserID             int64  `json:"toUserId"`
	DayOfWeek            int    `json:"dayOfWeek"`
	HourUTC              int    `json:"hourUtc"`
	MinuteUTC            int    `json:"minuteUtc"`
	Status               string `json:"status"`
	LastBookingCreatedAt *int64 `json:"lastBookingCreatedAt,omitempty"`
	CreatedAt            int64  `json:"createdAt"`
}

// FromDomainRule конвертирует доменное правило в ответ API
func FromDomainRule(r *domain.RecurringRule) *RuleResponse {
	resp := &RuleResponse{
		ID:         r.ID,
		FromUserID: r.FromUserID,
		ToUserID:   r.ToUserID,
		DayOfWeek:  int(r.DayOfWeek),
		HourUTC:    r.HourUTC,
		MinuteUTC:  r.MinuteUTC,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.UnixMilli(),
	}

	if r.LastBookingCreatedAt != nil {
		ms := r.LastBookingCreatedAt.UnixMilli()
		resp.LastBookingCreatedAt = &ms
	}

	return resp
}

// ToDomainRuleStatus валидирует строковый статус правила
func ToDomainRuleStatus(s string) (domain.RuleStatus, bool) {
	switch domain.RuleStatus(s) {
	case domain.RuleStatusActive, domain.RuleStatusPaused, domain.RuleStatusCanceled:
		return domain.RuleStatus(s), true
	}
	return "", false
}
