package ukclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.July, day.Month())
	assert.Equal(t, 15, day.Day())

	_, err = ParseDate("15/07/2025")
	assert.Error(t, err)
}

func TestAtLocalTime_DST(t *testing.T) {
	// Летом Лондон живет по BST (UTC+1): локальные 09:00 — это 08:00 UTC
	summer, err := ParseDate("2025-07-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 15, 8, 0, 0, 0, time.UTC), AtLocalTime(summer, 9, 0))

	// Зимой Лондон совпадает с UTC
	winter, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), AtLocalTime(winter, 9, 0))
}

func TestWorkingWindow(t *testing.T) {
	day, err := ParseDate("2025-07-15")
	require.NoError(t, err)

	open, close := WorkingWindow(day, 8, 20)
	assert.Equal(t, time.Date(2025, 7, 15, 7, 0, 0, 0, time.UTC), open)
	assert.Equal(t, time.Date(2025, 7, 15, 19, 0, 0, 0, time.UTC), close)
	assert.Equal(t, 12*time.Hour, close.Sub(open))
}

func TestSameLocalDay(t *testing.T) {
	// 23:30 UTC летом — уже следующий день по лондонскому времени
	lateUTC := time.Date(2025, 7, 15, 23, 30, 0, 0, time.UTC)
	nextMorning := time.Date(2025, 7, 16, 6, 0, 0, 0, time.UTC)
	assert.True(t, SameLocalDay(lateUTC, nextMorning))

	sameUTCDay := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	assert.False(t, SameLocalDay(lateUTC, sameUTCDay))
}

func TestFormatLocal(t *testing.T) {
	// 14:00 UTC летом отображается как 15:00 по Лондону
	moment := time.Date(2025, 7, 15, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "15/07/2025 15:00", FormatLocal(moment))
	assert.Equal(t, "15:00", FormatLocalTime(moment))
}

func TestWeekStartUTC(t *testing.T) {
	// 2025-03-12 — среда; ISO-неделя началась в понедельник 2025-03-10
	wednesday := time.Date(2025, 3, 12, 15, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), WeekStartUTC(wednesday))

	// Понедельник — начало собственной недели
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStartUTC(monday))

	// Воскресенье относится к неделе прошедшего понедельника
	sunday := time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), WeekStartUTC(sunday))
}
