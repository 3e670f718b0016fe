package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	identityClient "github.com/tutorlane/TL-BookingService/internal/integrations/identity"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
	"github.com/tutorlane/TL-BookingService/internal/service/eligibility"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) AppendEvent(ctx context.Context, event *domain.BookingEvent) (*domain.BookingEvent, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingEvent), args.Error(1)
}

type MockEligibilityChecker struct {
	mock.Mock
}

func (m *MockEligibilityChecker) Compute(ctx context.Context, userA, userB int64) (*eligibility.Eligibility, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eligibility.Eligibility), args.Error(1)
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	bookingRepo *MockBookingRepository
	elig        *MockEligibilityChecker
	checker     *MockConflictChecker
	identity    *MockIdentityClient
	uc          *UseCase
}

func newFixtures() *fixtures {
	f := &fixtures{
		bookingRepo: &MockBookingRepository{},
		elig:        &MockEligibilityChecker{},
		checker:     &MockConflictChecker{},
		identity:    &MockIdentityClient{},
	}
	f.uc = NewUseCase(f.bookingRepo, f.elig, f.checker, f.identity, fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = fixedClock{now: testNow}
	return f
}

func (f *fixtures) expectUsers() {
	f.identity.On("GetUser", mock.Anything, studentID).
		Return(&domain.User{ID: studentID, Role: domain.RoleStudent}, nil)
	f.identity.On("GetUser", mock.Anything, tutorID).
		Return(&domain.User{ID: tutorID, Role: domain.RoleTutor}, nil)
}

func validRequest(bookingType string) *Request {
	return &Request{
		ActorID:        studentID,
		FromUserID:     studentID,
		ToUserID:       tutorID,
		StartTimestamp: testNow.Add(48 * time.Hour).UnixMilli(),
		BookingType:    bookingType,
	}
}

// Тесты

func TestExecute_FreeBooking(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	start := testNow.Add(48 * time.Hour)

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreateFree: true}, nil)
	f.checker.On("CheckWindow", mock.Anything, mock.MatchedBy(func(req conflicts.CheckRequest) bool {
		return req.Start.Equal(start) && req.Type == domain.TypeFree && !req.SkipRuleCheck
	})).Return(nil)
	f.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusPending && b.LastActionBy == studentID && b.BookingType == domain.TypeFree
	})).Return(&domain.Booking{
		ID:           42,
		FromUserID:   studentID,
		ToUserID:     tutorID,
		StartsAt:     start,
		BookingType:  domain.TypeFree,
		Status:       domain.StatusPending,
		LastActionBy: studentID,
		CreatedAt:    testNow,
	}, nil)
	f.bookingRepo.On("AppendEvent", mock.Anything, mock.MatchedBy(func(e *domain.BookingEvent) bool {
		return e.BookingID == 42 && e.Type == domain.EventCreated && e.ActingUserID == studentID
	})).Return(&domain.BookingEvent{ID: 1}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest("free"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 15, resp.DurationMinutes)
	assert.Equal(t, start.Add(15*time.Minute).UnixMilli(), resp.EndTimestamp)

	f.bookingRepo.AssertExpectations(t)
	f.checker.AssertExpectations(t)
}

func TestExecute_TutorCanPropose(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreateFree: true}, nil)
	f.checker.On("CheckWindow", mock.Anything, mock.Anything).Return(nil)
	f.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		// Предложение репетитора: отвечать будет студент
		return b.LastActionBy == tutorID
	})).Return(&domain.Booking{ID: 42, FromUserID: studentID, ToUserID: tutorID, BookingType: domain.TypeFree, Status: domain.StatusPending, LastActionBy: tutorID}, nil)
	f.bookingRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(&domain.BookingEvent{ID: 1}, nil)

	req := validRequest("free")
	req.ActorID = tutorID

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, tutorID, resp.LastActionBy)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixtures()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"same participants", func(r *Request) { r.ToUserID = r.FromUserID }},
		{"zero timestamp", func(r *Request) { r.StartTimestamp = 0 }},
		{"unknown type", func(r *Request) { r.BookingType = "trial" }},
		{"zero actor", func(r *Request) { r.ActorID = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest("free")
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ActorNotParticipant(t *testing.T) {
	f := newFixtures()

	req := validRequest("free")
	req.ActorID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	f.identity.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixtures()

	f.identity.On("GetUser", mock.Anything, studentID).
		Return(nil, identityClient.ErrUserNotFound)

	_, err := f.uc.Execute(context.Background(), validRequest("free"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_InvalidRolePair(t *testing.T) {
	f := newFixtures()

	// Обе стороны — студенты
	f.identity.On("GetUser", mock.Anything, studentID).
		Return(&domain.User{ID: studentID, Role: domain.RoleStudent}, nil)
	f.identity.On("GetUser", mock.Anything, tutorID).
		Return(&domain.User{ID: tutorID, Role: domain.RoleStudent}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("free"))
	assert.ErrorIs(t, err, ErrInvalidRolePair)
}

func TestExecute_FreeSessionPending(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{HasActiveFreeBooking: true}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("paid"))
	assert.ErrorIs(t, err, ErrFreeSessionPending)
	f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_FreeSessionUsed(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	// Бесплатная уже завершена — разрешены только платные
	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreatePaid: true}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("free"))
	assert.ErrorIs(t, err, ErrFreeSessionUsed)
}

func TestExecute_FreeSessionRequired(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreateFree: true}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest("paid"))
	assert.ErrorIs(t, err, ErrFreeSessionRequired)
}

func TestExecute_ConflictRejected(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreateFree: true}, nil)
	f.checker.On("CheckWindow", mock.Anything, mock.Anything).
		Return(conflicts.ErrRecurringConflict)

	_, err := f.uc.Execute(context.Background(), validRequest("free"))
	assert.ErrorIs(t, err, conflicts.ErrRecurringConflict)
	f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_MaterializerSkipsRuleCheck(t *testing.T) {
	f := newFixtures()
	f.expectUsers()

	ruleID := int64(7)

	f.elig.On("Compute", mock.Anything, studentID, tutorID).
		Return(&eligibility.Eligibility{CanCreatePaid: true}, nil)
	f.checker.On("CheckWindow", mock.Anything, mock.MatchedBy(func(req conflicts.CheckRequest) bool {
		return req.SkipRuleCheck
	})).Return(nil)
	f.bookingRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.RecurringRuleID != nil && *b.RecurringRuleID == ruleID
	})).Return(&domain.Booking{ID: 43, FromUserID: studentID, ToUserID: tutorID, BookingType: domain.TypePaid, Status: domain.StatusPending, LastActionBy: studentID, RecurringRuleID: &ruleID}, nil)
	f.bookingRepo.On("AppendEvent", mock.Anything, mock.Anything).Return(&domain.BookingEvent{ID: 1}, nil)

	req := validRequest("paid")
	req.RecurringRuleID = &ruleID

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.RecurringRuleID)
	assert.Equal(t, ruleID, *resp.RecurringRuleID)
	f.checker.AssertExpectations(t)
}
