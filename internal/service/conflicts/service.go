package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/ukclock"
)

// CheckRequest проверяемое временное окно
type CheckRequest struct {
	// Start предложенное время начала (UTC); конец выводится из типа сессии
	Start time.Time
	Type  domain.BookingType

	// FromUserID студент, ToUserID репетитор
	FromUserID int64
	ToUserID   int64

	// ExcludeBookingID исключает бронирование из проверки пересечений
	// (используется при переносе, чтобы не конфликтовать с самим собой)
	ExcludeBookingID *int64

	// SkipRuleCheck отключает проверку коллизий с еженедельными правилами.
	// Включается только материализатором для его собственных вставок,
	// иначе правило отклоняло бы собственное бронирование
	SkipRuleCheck bool

	// Now момент "сейчас" (UTC) для проверки прошедшего времени
	Now time.Time
}

// Service детектор конфликтов расписания.
// Вся арифметика выполняется в UTC; локальное (UK) форматирование
// появляется только в текстах ошибок для пользователя
type Service struct {
	bookingRepo BookingRepository
	ruleRepo    RuleRepository
	logger      Logger
}

// NewService создает новый экземпляр детектора конфликтов
func NewService(bookingRepo BookingRepository, ruleRepo RuleRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		ruleRepo:    ruleRepo,
		logger:      logger,
	}
}

// CheckWindow проверяет, свободно ли предложенное окно для обеих сторон.
// Порядок проверок: коллизия с еженедельным правилом, пересечение с
// существующими бронированиями, затем защита от прошедшего времени
func (s *Service) CheckWindow(ctx context.Context, req CheckRequest) error {
	// 1. Коллизия с зарезервированными слотами еженедельных правил
	if !req.SkipRuleCheck {
		rules, err := s.ruleRepo.GetActiveByUsers(ctx, req.FromUserID, req.ToUserID)
		if err != nil {
			s.logger.Error("CheckWindow: failed to get rules for pair (%d, %d): %v", req.FromUserID, req.ToUserID, err)
			return fmt.Errorf("%w: failed to get recurring rules: %v", ErrInternal, err)
		}

		for _, rule := range rules {
			if rule.MatchesStart(req.Start) {
				s.logger.Warn("CheckWindow: start %s collides with rule id=%d (%s %02d:%02d UTC)",
					req.Start.Format(time.RFC3339), rule.ID, rule.DayOfWeek, rule.HourUTC, rule.MinuteUTC)
				return fmt.Errorf("%w: %s is reserved every %s at %02d:%02d UTC for the %s",
					ErrRecurringConflict,
					ukclock.FormatLocal(req.Start),
					rule.DayOfWeek,
					rule.HourUTC,
					rule.MinuteUTC,
					ruleParty(rule, req.ToUserID))
			}
		}
	}

	// 2. Пересечение с существующими бронированиями обеих сторон
	end := domain.SessionEnd(req.Start, req.Type)

	bookings, err := s.bookingRepo.GetOccupyingByUsers(ctx, req.FromUserID, req.ToUserID, req.ExcludeBookingID)
	if err != nil {
		s.logger.Error("CheckWindow: failed to get bookings for pair (%d, %d): %v", req.FromUserID, req.ToUserID, err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if OverlapsWindow(req.Start, end, b) {
			party := BusyParty(b, req.FromUserID, req.ToUserID)
			s.logger.Warn("CheckWindow: window [%s, %s) overlaps booking id=%d (%s)",
				req.Start.Format(time.RFC3339), end.Format(time.RFC3339), b.ID, party)
			return fmt.Errorf("%w: the %s is busy %s–%s",
				ErrBookingOverlap,
				party,
				ukclock.FormatLocal(b.StartsAt),
				ukclock.FormatLocalTime(b.EndsAt()))
		}
	}

	// 3. Защита от прошедшего времени
	if !req.Start.After(req.Now) {
		return fmt.Errorf("%w: requested start %s", ErrPastTime, ukclock.FormatLocal(req.Start))
	}

	return nil
}

// OverlapsWindow проверяет пересечение окна [start, end) с интервалом бронирования.
// Интервалы полуоткрытые: сессия, заканчивающаяся ровно в момент начала
// другой, конфликтом НЕ является
func OverlapsWindow(start, end time.Time, b *domain.Booking) bool {
	return start.Before(b.EndsAt()) && end.After(b.StartsAt)
}

// BusyParty возвращает, чья сторона занята конфликтующим бронированием
func BusyParty(b *domain.Booking, studentID, tutorID int64) string {
	if b.IsParticipant(tutorID) {
		return "tutor"
	}
	return "student"
}

func ruleParty(r *domain.RecurringRule, tutorID int64) string {
	if r.Touches(tutorID) {
		return "tutor"
	}
	return "student"
}
