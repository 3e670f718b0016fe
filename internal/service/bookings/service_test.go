package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	bookingstorage "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetConfirmedStartedBefore(ctx context.Context, deadline time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, lastActionBy int64) error {
	args := m.Called(ctx, id, status, lastActionBy)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateSchedule(ctx context.Context, id int64, startsAt time.Time, status domain.BookingStatus, lastActionBy int64) error {
	args := m.Called(ctx, id, startsAt, status, lastActionBy)
	return args.Error(0)
}

func (m *MockBookingRepository) AppendEvent(ctx context.Context, event *domain.BookingEvent) (*domain.BookingEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingEvent), args.Error(1)
}

func (m *MockBookingRepository) ListEvents(ctx context.Context, bookingID int64) ([]domain.BookingEvent, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingEvent), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockConflictChecker struct {
	mock.Mock
}

func (m *MockConflictChecker) CheckWindow(ctx context.Context, req conflicts.CheckRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Фикстуры

const (
	studentID = int64(10)
	tutorID   = int64(20)
)

var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type fixtures struct {
	bookingRepo     *MockBookingRepository
	paymentRepo     *MockPaymentRepository
	conflictChecker *MockConflictChecker
	identity        *MockIdentityClient
	svc             *Service
}

func newFixtures() *fixtures {
	f := &fixtures{
		bookingRepo:     &MockBookingRepository{},
		paymentRepo:     &MockPaymentRepository{},
		conflictChecker: &MockConflictChecker{},
		identity:        &MockIdentityClient{},
	}
	f.svc = NewService(f.bookingRepo, f.paymentRepo, f.conflictChecker, f.identity, fakeTxManager{}, nopLogger{})
	f.svc.timeProvider = fixedClock{now: testNow}
	return f
}

func makeBooking(bookingType domain.BookingType, status domain.BookingStatus, lastActionBy int64) *domain.Booking {
	return &domain.Booking{
		ID:           1,
		FromUserID:   studentID,
		ToUserID:     tutorID,
		StartsAt:     testNow.Add(48 * time.Hour),
		BookingType:  bookingType,
		Status:       status,
		LastActionBy: lastActionBy,
	}
}

func expectTransition(f *fixtures, id int64, status domain.BookingStatus, actorID int64) {
	f.bookingRepo.On("UpdateStatus", mock.Anything, id, status, actorID).Return(nil)
	f.bookingRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*domain.BookingEvent")).
		Return(&domain.BookingEvent{ID: 100}, nil)
}

// Accept / Reject

func TestAccept_FreeBookingConfirmedImmediately(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusConfirmed, tutorID)

	resp, err := f.svc.Accept(context.Background(), 1, tutorID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, tutorID, resp.LastActionBy)
	f.bookingRepo.AssertExpectations(t)
}

func TestAccept_PaidBookingAwaitsPayment(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusPending, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusAwaitingPayment, studentID)

	resp, err := f.svc.Accept(context.Background(), 1, studentID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAwaitingPayment), resp.Status)
}

func TestAccept_ProposerCannotAcceptOwnProposal(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Accept(context.Background(), 1, studentID)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestAccept_NonParticipant(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Accept(context.Background(), 1, int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAccept_WrongStatus(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Accept(context.Background(), 1, tutorID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAccept_AfterReschedule(t *testing.T) {
	f := newFixtures()
	// Репетитор предложил перенос — отвечает студент
	b := makeBooking(domain.TypePaid, domain.StatusAwaitingReschedule, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusAwaitingPayment, studentID)

	resp, err := f.svc.Accept(context.Background(), 1, studentID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAwaitingPayment), resp.Status)
}

func TestReject(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusRejected, tutorID)

	resp, err := f.svc.Reject(context.Background(), 1, tutorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), resp.Status)
}

// Cancel

func TestCancel_FromConfirmed(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusCanceled, studentID)

	resp, err := f.svc.Cancel(context.Background(), 1, studentID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
}

func TestCancel_TerminalStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCanceled, domain.StatusRejected} {
		f := newFixtures()
		b := makeBooking(domain.TypePaid, status, tutorID)

		f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

		_, err := f.svc.Cancel(context.Background(), 1, studentID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

// Reschedule

func TestReschedule(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusPending, studentID)
	newStart := testNow.Add(72 * time.Hour)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.conflictChecker.On("CheckWindow", mock.Anything, mock.MatchedBy(func(req conflicts.CheckRequest) bool {
		return req.ExcludeBookingID != nil && *req.ExcludeBookingID == int64(1) && req.Start.Equal(newStart)
	})).Return(nil)
	f.bookingRepo.On("UpdateSchedule", mock.Anything, int64(1), newStart, domain.StatusAwaitingReschedule, tutorID).Return(nil)
	f.bookingRepo.On("AppendEvent", mock.Anything, mock.AnythingOfType("*domain.BookingEvent")).
		Return(&domain.BookingEvent{ID: 100}, nil)

	resp, err := f.svc.Reschedule(context.Background(), 1, &models.ReschedulePayload{
		ActorID:     tutorID,
		NewStartsAt: newStart.UnixMilli(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAwaitingReschedule), resp.Status)
	assert.Equal(t, newStart.UnixMilli(), resp.Timestamp)
	f.conflictChecker.AssertExpectations(t)
}

func TestReschedule_ConflictRejected(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.conflictChecker.On("CheckWindow", mock.Anything, mock.Anything).
		Return(conflicts.ErrBookingOverlap)

	_, err := f.svc.Reschedule(context.Background(), 1, &models.ReschedulePayload{
		ActorID:     tutorID,
		NewStartsAt: testNow.Add(72 * time.Hour).UnixMilli(),
	})
	assert.ErrorIs(t, err, conflicts.ErrBookingOverlap)
	f.bookingRepo.AssertNotCalled(t, "UpdateSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReschedule_FromConfirmedForbidden(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Reschedule(context.Background(), 1, &models.ReschedulePayload{
		ActorID:     tutorID,
		NewStartsAt: testNow.Add(72 * time.Hour).UnixMilli(),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Complete

func TestComplete_TutorCompletesConfirmed(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	expectTransition(f, 1, domain.StatusCompleted, tutorID)

	resp, err := f.svc.Complete(context.Background(), 1, tutorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestComplete_StudentForbidden(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Complete(context.Background(), 1, studentID)
	assert.ErrorIs(t, err, ErrTutorOnly)
}

func TestComplete_NotConfirmed(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusPending, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.Complete(context.Background(), 1, tutorID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// CompleteElapsed

func TestCompleteElapsed(t *testing.T) {
	f := newFixtures()

	elapsed := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)
	elapsed.ID = 1
	elapsed.StartsAt = testNow.Add(-time.Hour) // бесплатная, закончилась 45 минут назад

	running := makeBooking(domain.TypePaid, domain.StatusConfirmed, tutorID)
	running.ID = 2
	running.StartsAt = testNow.Add(-30 * time.Minute) // платная, идет еще полчаса

	f.bookingRepo.On("GetConfirmedStartedBefore", mock.Anything, testNow).
		Return([]*domain.Booking{elapsed, running}, nil)
	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(elapsed, nil)
	expectTransition(f, 1, domain.StatusCompleted, tutorID)

	count, err := f.svc.CompleteElapsed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	f.bookingRepo.AssertNotCalled(t, "GetByID", mock.Anything, int64(2))
}

func TestCompleteElapsed_StatusChangedBetweenScanAndTx(t *testing.T) {
	f := newFixtures()

	scanned := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)
	scanned.StartsAt = testNow.Add(-time.Hour)

	// К моменту транзакции бронирование уже отменили
	canceled := makeBooking(domain.TypeFree, domain.StatusCanceled, studentID)
	canceled.StartsAt = scanned.StartsAt

	f.bookingRepo.On("GetConfirmedStartedBefore", mock.Anything, testNow).
		Return([]*domain.Booking{scanned}, nil)
	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(canceled, nil)

	count, err := f.svc.CompleteElapsed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	f.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteElapsed_ErrorDoesNotAbortOthers(t *testing.T) {
	f := newFixtures()

	first := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)
	first.ID = 1
	first.StartsAt = testNow.Add(-2 * time.Hour)

	second := makeBooking(domain.TypeFree, domain.StatusConfirmed, tutorID)
	second.ID = 2
	second.StartsAt = testNow.Add(-2 * time.Hour)

	f.bookingRepo.On("GetConfirmedStartedBefore", mock.Anything, testNow).
		Return([]*domain.Booking{first, second}, nil)
	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("deadlock"))
	f.bookingRepo.On("GetByID", mock.Anything, int64(2)).Return(second, nil)
	expectTransition(f, 2, domain.StatusCompleted, tutorID)

	count, err := f.svc.CompleteElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// Платежные операции

func paymentPayload() *models.PaymentPayload {
	return &models.PaymentPayload{
		AmountCents: 4500,
		Currency:    "GBP",
		ProviderRef: "pi_3abc",
	}
}

func TestInitiatePayment(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusAwaitingPayment, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == int64(1) && p.Status == domain.PaymentStatusProcessing && p.AmountCents == 4500
	})).Return(&domain.Payment{ID: 7}, nil)
	expectTransition(f, 1, domain.StatusProcessingPayment, studentID)

	resp, err := f.svc.InitiatePayment(context.Background(), 1, studentID, paymentPayload())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusProcessingPayment), resp.Status)
	f.paymentRepo.AssertExpectations(t)
}

func TestInitiatePayment_FreeBooking(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypeFree, domain.StatusAwaitingPayment, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.InitiatePayment(context.Background(), 1, studentID, paymentPayload())
	assert.ErrorIs(t, err, ErrNotPaidBooking)
}

func TestInitiatePayment_TutorCannotPay(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusAwaitingPayment, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.InitiatePayment(context.Background(), 1, tutorID, paymentPayload())
	assert.ErrorIs(t, err, ErrPayerOnly)
}

func TestMarkPaymentSucceeded(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusProcessingPayment, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("GetLatestByBookingID", mock.Anything, int64(1)).
		Return(&domain.Payment{ID: 7, BookingID: 1, Status: domain.PaymentStatusProcessing}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int64(7), domain.PaymentStatusSucceeded).Return(nil)
	expectTransition(f, 1, domain.StatusConfirmed, studentID)

	resp, err := f.svc.MarkPaymentSucceeded(context.Background(), 1, paymentPayload())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	f.paymentRepo.AssertExpectations(t)
}

func TestMarkPaymentFailed_ReturnsToAwaitingPayment(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusProcessingPayment, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("GetLatestByBookingID", mock.Anything, int64(1)).
		Return(&domain.Payment{ID: 7, Status: domain.PaymentStatusProcessing}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int64(7), domain.PaymentStatusFailed).Return(nil)
	expectTransition(f, 1, domain.StatusAwaitingPayment, studentID)

	resp, err := f.svc.MarkPaymentFailed(context.Background(), 1, paymentPayload())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAwaitingPayment), resp.Status)
}

func TestRefundPayment_ConfirmedBecomesCanceled(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("GetLatestByBookingID", mock.Anything, int64(1)).
		Return(&domain.Payment{ID: 7, Status: domain.PaymentStatusSucceeded}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int64(7), domain.PaymentStatusRefunded).Return(nil)
	expectTransition(f, 1, domain.StatusCanceled, studentID)

	resp, err := f.svc.RefundPayment(context.Background(), 1, studentID, paymentPayload())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
}

func TestRefundPayment_CompletedKeepsStatus(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusCompleted, tutorID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("GetLatestByBookingID", mock.Anything, int64(1)).
		Return(&domain.Payment{ID: 7, Status: domain.PaymentStatusSucceeded}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int64(7), domain.PaymentStatusRefunded).Return(nil)
	expectTransition(f, 1, domain.StatusCompleted, studentID)

	resp, err := f.svc.RefundPayment(context.Background(), 1, studentID, paymentPayload())
	require.NoError(t, err)

	// Завершенная сессия остается завершенной, добавляется только событие возврата
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestRefundPayment_ProviderInitiated(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.paymentRepo.On("GetLatestByBookingID", mock.Anything, int64(1)).
		Return(&domain.Payment{ID: 7, Status: domain.PaymentStatusSucceeded}, nil)
	f.paymentRepo.On("UpdateStatus", mock.Anything, int64(7), domain.PaymentStatusRefunded).Return(nil)
	// Вебхук провайдера: событие пишется от имени плательщика
	expectTransition(f, 1, domain.StatusCanceled, studentID)

	resp, err := f.svc.RefundPayment(context.Background(), 1, 0, paymentPayload())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), resp.Status)
}

func TestRefundPayment_NonParticipant(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.RefundPayment(context.Background(), 1, int64(999), paymentPayload())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Чтение

func TestGetByID(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.bookingRepo.On("ListEvents", mock.Anything, int64(1)).
		Return([]domain.BookingEvent{{ID: 1, BookingID: 1, Type: domain.EventCreated, ActingUserID: studentID}}, nil)

	resp, err := f.svc.GetByID(context.Background(), 1, studentID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Len(t, resp.Events, 1)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixtures()

	f.bookingRepo.On("GetByID", mock.Anything, int64(404)).
		Return(nil, bookingstorage.ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), 404, studentID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_NonParticipant(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := f.svc.GetByID(context.Background(), 1, int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	f := newFixtures()
	bad := "running"

	_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: studentID,
		Status: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVerifyParticipant(t *testing.T) {
	f := newFixtures()
	b := makeBooking(domain.TypePaid, domain.StatusConfirmed, studentID)

	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.identity.On("GetUser", mock.Anything, studentID).
		Return(&domain.User{ID: studentID, Name: "Alice", Email: "alice@example.com"}, nil)
	f.identity.On("GetUser", mock.Anything, tutorID).
		Return(&domain.User{ID: tutorID, Name: "Bob", Email: "bob@example.com"}, nil)

	resp, err := f.svc.VerifyParticipant(context.Background(), 1, tutorID)
	require.NoError(t, err)

	assert.Equal(t, studentID, resp.Student.ID)
	assert.Equal(t, tutorID, resp.Tutor.ID)
	assert.Equal(t, b.ID, resp.Booking.ID)
}
