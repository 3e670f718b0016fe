// Package ukclock собирает всю календарную арифметику сервиса в одном месте:
// преобразование локального (Europe/London) календарного дня в UTC-интервалы,
// форматирование времени для пользователя и границы ISO-недели.
//
// Вся бизнес-логика оперирует UTC; ukclock — единственное место, где
// появляется локальная таймзона и учитывается переход на летнее время.
package ukclock

import (
	"fmt"
	"time"
)

// DateFormat формат календарной даты на границе API
const DateFormat = "2006-01-02"

// displayFormat формат отображения времени для пользователя (UK locale)
const displayFormat = "02/01/2006 15:04"

var london *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		// tzdata недоступна — деградируем до UTC, чтобы сервис оставался рабочим
		loc = time.UTC
	}
	london = loc
}

// Location возвращает таймзону Europe/London
func Location() *time.Location {
	return london
}

// ParseDate парсит календарную дату YYYY-MM-DD как локальный (UK) день
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, london)
	if err != nil {
		return time.Time{}, fmt.Errorf("ukclock: invalid date %q: %w", s, err)
	}
	return t, nil
}

// DayStart возвращает UTC-момент локальной (UK) полуночи дня, к которому относится day
func DayStart(day time.Time) time.Time {
	y, m, d := day.In(london).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, london).UTC()
}

// AtLocalTime возвращает UTC-момент, соответствующий hour:minute локального (UK)
// времени в календарный день day. Смещение вычисляется заново для каждого дня,
// поэтому переходы на летнее время учитываются корректно.
func AtLocalTime(day time.Time, hour, minute int) time.Time {
	y, m, d := day.In(london).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, london).UTC()
}

// WorkingWindow возвращает UTC-интервал рабочего дня [open, close) для локального дня day
func WorkingWindow(day time.Time, openHour, closeHour int) (time.Time, time.Time) {
	return AtLocalTime(day, openHour, 0), AtLocalTime(day, closeHour, 0)
}

// SameLocalDay проверяет, что два момента приходятся на один локальный (UK) день
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.In(london).Date()
	by, bm, bd := b.In(london).Date()
	return ay == by && am == bm && ad == bd
}

// FormatLocal форматирует UTC-момент в локальное (UK) представление для сообщений пользователю
func FormatLocal(t time.Time) string {
	return t.In(london).Format(displayFormat)
}

// FormatLocalTime форматирует только время HH:MM локального (UK) представления
func FormatLocalTime(t time.Time) string {
	return t.In(london).Format("15:04")
}

// WeekStartUTC возвращает понедельник 00:00 UTC ISO-недели, которой принадлежит t
func WeekStartUTC(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}
