package get_available_slots

import (
	"sort"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

// generateCandidates генерирует начала слотов рабочего дня с фиксированным
// шагом и отбрасывает занятые. Кандидат отбрасывается, если:
//   - сессия не помещается до конца рабочего дня;
//   - начало не в будущем;
//   - окно пересекается с существующим бронированием любой из сторон;
//   - начало совпадает со слотом активного еженедельного правила.
//
// Интервалы полуоткрытые: слот, начинающийся ровно в момент окончания
// другой сессии, доступен
func generateCandidates(
	open, close time.Time,
	duration time.Duration,
	step time.Duration,
	now time.Time,
	bookings []*domain.Booking,
	rules []*domain.RecurringRule,
) []int64 {
	available := make([]int64, 0)

	for t := open; !t.After(close); t = t.Add(step) {
		end := t.Add(duration)
		if end.After(close) {
			break
		}

		if !t.After(now) {
			continue
		}

		if isBusy(t, end, bookings, rules) {
			continue
		}

		available = append(available, t.UnixMilli())
	}

	return available
}

func isBusy(start, end time.Time, bookings []*domain.Booking, rules []*domain.RecurringRule) bool {
	for _, b := range bookings {
		if conflicts.OverlapsWindow(start, end, b) {
			return true
		}
	}

	for _, r := range rules {
		if r.MatchesStart(start) {
			return true
		}
	}

	return false
}

// collectBusySlots собирает занятые интервалы дня: по одному на каждое
// бронирование, попадающее в день, и на каждое вхождение правила
func collectBusySlots(
	dayStart time.Time,
	studentID, tutorID int64,
	bookings []*domain.Booking,
	rules []*domain.RecurringRule,
) []BusySlot {
	dayEnd := dayStart.Add(24 * time.Hour)
	busy := make([]BusySlot, 0)

	for _, b := range bookings {
		if !conflicts.OverlapsWindow(dayStart, dayEnd, b) {
			continue
		}
		busy = append(busy, BusySlot{
			Timestamp:       b.StartsAt.UnixMilli(),
			EndTimestamp:    b.EndsAt().UnixMilli(),
			BusyParty:       conflicts.BusyParty(b, studentID, tutorID),
			RecurringWeekly: b.RecurringRuleID != nil,
		})
	}

	for _, r := range rules {
		occ, ok := ruleOccurrenceWithin(r, dayStart, dayEnd)
		if !ok {
			continue
		}
		busy = append(busy, BusySlot{
			Timestamp:       occ.UnixMilli(),
			EndTimestamp:    occ.Add(time.Duration(domain.PaidSessionMinutes) * time.Minute).UnixMilli(),
			BusyParty:       rulePartyName(r, tutorID),
			RecurringWeekly: true,
		})
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Timestamp < busy[j].Timestamp })

	return busy
}

// ruleOccurrenceWithin ищет вхождение правила в UTC-интервале [from, to).
// Локальный (UK) день может покрывать две UTC-даты, поэтому проверяются обе
func ruleOccurrenceWithin(r *domain.RecurringRule, from, to time.Time) (time.Time, bool) {
	for _, base := range []time.Time{from, from.Add(24 * time.Hour)} {
		y, m, d := base.UTC().Date()
		occ := time.Date(y, m, d, r.HourUTC, r.MinuteUTC, 0, 0, time.UTC)
		if occ.Weekday() == r.DayOfWeek && !occ.Before(from) && occ.Before(to) {
			return occ, true
		}
	}
	return time.Time{}, false
}

func rulePartyName(r *domain.RecurringRule, tutorID int64) string {
	if r.Touches(tutorID) {
		return "tutor"
	}
	return "student"
}
