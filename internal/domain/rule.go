package domain

import "time"

// RuleStatus статус еженедельного правила
type RuleStatus string

const (
	RuleStatusActive   RuleStatus = "active"
	RuleStatusPaused   RuleStatus = "paused"
	RuleStatusCanceled RuleStatus = "canceled"
)

// RecurringRule еженедельная резервация слота между студентом и репетитором.
// Активное правило резервирует своё время: обычные бронирования на точное
// время правила отклоняются, а материализатор раз в неделю создает
// бронирование на следующее вхождение
type RecurringRule struct {
	ID int64

	// FromUserID студент (владелец правила), ToUserID репетитор
	FromUserID int64
	ToUserID   int64

	DayOfWeek time.Weekday
	HourUTC   int
	MinuteUTC int

	Status RuleStatus

	// LastBookingCreatedAt watermark, защищающий от повторной
	// материализации в пределах одной ISO-недели
	LastBookingCreatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the rule currently reserves its slot
func (r *RecurringRule) IsActive() bool {
	return r.Status == RuleStatusActive
}

// Touches returns true if the user is a party of the rule
func (r *RecurringRule) Touches(userID int64) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// MatchesStart проверяет точное совпадение момента t (UTC) с расписанием правила
func (r *RecurringRule) MatchesStart(t time.Time) bool {
	t = t.UTC()
	return t.Weekday() == r.DayOfWeek && t.Hour() == r.HourUTC && t.Minute() == r.MinuteUTC
}

// NextOccurrence возвращает следующее вхождение правила строго после now (UTC).
// Если сегодня совпадает с днём правила, вхождение переносится на следующую
// неделю: еженедельный запуск материализатора всегда создает бронирование
// на предстоящую неделю
func (r *RecurringRule) NextOccurrence(now time.Time) time.Time {
	now = now.UTC()
	days := (int(r.DayOfWeek) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	target := now.AddDate(0, 0, days)
	return time.Date(target.Year(), target.Month(), target.Day(), r.HourUTC, r.MinuteUTC, 0, 0, time.UTC)
}
