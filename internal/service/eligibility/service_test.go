package eligibility

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/TL-BookingService/internal/domain"
)

// MockBookingRepository is a mock implementation of BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByPair(ctx context.Context, userA, userB int64, bookingType *domain.BookingType) ([]*domain.Booking, error) {
	args := m.Called(ctx, userA, userB, bookingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestCompute_NoHistory(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return([]*domain.Booking{}, nil)

	result, err := svc.Compute(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, result.CanCreateFree)
	assert.False(t, result.CanCreatePaid)
	assert.False(t, result.HasActiveFreeBooking)

	repo.AssertExpectations(t)
}

func TestCompute_ActiveFreeBookingBlocksEverything(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return([]*domain.Booking{
			{ID: 5, BookingType: domain.TypeFree, Status: domain.StatusPending},
		}, nil)

	result, err := svc.Compute(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, result.CanCreateFree)
	assert.False(t, result.CanCreatePaid)
	assert.True(t, result.HasActiveFreeBooking)
}

func TestCompute_CompletedFreeOpensPaidOnly(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return([]*domain.Booking{
			{ID: 5, BookingType: domain.TypeFree, Status: domain.StatusCompleted},
		}, nil)

	result, err := svc.Compute(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.False(t, result.CanCreateFree)
	assert.True(t, result.CanCreatePaid)
	assert.False(t, result.HasActiveFreeBooking)
}

func TestCompute_CanceledFreeAllowsRetry(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return([]*domain.Booking{
			{ID: 5, BookingType: domain.TypeFree, Status: domain.StatusCanceled},
			{ID: 6, BookingType: domain.TypeFree, Status: domain.StatusRejected},
		}, nil)

	result, err := svc.Compute(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, result.CanCreateFree)
	assert.False(t, result.CanCreatePaid)
}

func TestCompute_ActiveFreeWinsOverCompleted(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	// Завершенная бесплатная в истории, но есть и "живая" — приоритет у живой
	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return([]*domain.Booking{
			{ID: 5, BookingType: domain.TypeFree, Status: domain.StatusCompleted},
			{ID: 6, BookingType: domain.TypeFree, Status: domain.StatusConfirmed},
		}, nil)

	result, err := svc.Compute(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.True(t, result.HasActiveFreeBooking)
	assert.False(t, result.CanCreatePaid)
}

func TestCompute_RepositoryError(t *testing.T) {
	repo := &MockBookingRepository{}
	svc := NewService(repo, nopLogger{})

	repo.On("GetByPair", mock.Anything, int64(1), int64(2), mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.Compute(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrInternal)
}
