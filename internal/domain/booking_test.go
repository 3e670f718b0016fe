package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, SessionDuration(TypeFree))
	assert.Equal(t, 60*time.Minute, SessionDuration(TypePaid))

	assert.Equal(t, 15, SessionDurationMinutes(TypeFree))
	assert.Equal(t, 60, SessionDurationMinutes(TypePaid))
}

func TestBooking_EndsAt(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	free := &Booking{StartsAt: start, BookingType: TypeFree}
	assert.Equal(t, start.Add(15*time.Minute), free.EndsAt())

	paid := &Booking{StartsAt: start, BookingType: TypePaid}
	assert.Equal(t, start.Add(60*time.Minute), paid.EndsAt())
}

func TestBooking_OccupiesSlot(t *testing.T) {
	occupying := []BookingStatus{
		StatusPending,
		StatusAwaitingPayment,
		StatusProcessingPayment,
		StatusConfirmed,
		StatusAwaitingReschedule,
	}
	for _, status := range occupying {
		b := &Booking{Status: status}
		assert.True(t, b.OccupiesSlot(), "status %s must occupy its slot", status)
	}

	released := []BookingStatus{StatusCompleted, StatusCanceled, StatusRejected}
	for _, status := range released {
		b := &Booking{Status: status}
		assert.False(t, b.OccupiesSlot(), "status %s must release its slot", status)
	}
}

func TestBooking_IsTerminal(t *testing.T) {
	for _, status := range []BookingStatus{StatusCompleted, StatusCanceled, StatusRejected} {
		b := &Booking{Status: status}
		assert.True(t, b.IsTerminal(), "status %s is terminal", status)
	}

	for _, status := range []BookingStatus{StatusPending, StatusConfirmed, StatusAwaitingPayment} {
		b := &Booking{Status: status}
		assert.False(t, b.IsTerminal(), "status %s is not terminal", status)
	}
}

func TestBooking_Participants(t *testing.T) {
	b := &Booking{FromUserID: 10, ToUserID: 20}

	assert.True(t, b.IsParticipant(10))
	assert.True(t, b.IsParticipant(20))
	assert.False(t, b.IsParticipant(30))

	assert.Equal(t, int64(20), b.OtherParticipant(10))
	assert.Equal(t, int64(10), b.OtherParticipant(20))
}

func TestBookingType_Valid(t *testing.T) {
	assert.True(t, TypeFree.Valid())
	assert.True(t, TypePaid.Valid())
	assert.False(t, BookingType("premium").Valid())
	assert.False(t, BookingType("").Valid())
}
