package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	bookingstorage "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	"github.com/tutorlane/TL-BookingService/internal/service/messages/models"
)

// Mocks

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Message, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, messageID, userID int64) error {
	args := m.Called(ctx, messageID, userID)
	return args.Error(0)
}

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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const (
	studentID = int64(10)
	tutorID   = int64(20)
)

type fixtures struct {
	messageRepo *MockMessageRepository
	bookingRepo *MockBookingRepository
	svc         *Service
}

func newFixtures() *fixtures {
	f := &fixtures{
		messageRepo: &MockMessageRepository{},
		bookingRepo: &MockBookingRepository{},
	}
	f.svc = NewService(f.messageRepo, f.bookingRepo, nopLogger{})
	return f
}

func (f *fixtures) expectBooking(status domain.BookingStatus) {
	f.bookingRepo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, FromUserID: studentID, ToUserID: tutorID, Status: status}, nil)
}

// Send

func TestSend(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	f.messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.BookingID == 1 && m.SenderID == studentID && m.Text == "See you tomorrow!"
	})).Return(&domain.Message{ID: 5, BookingID: 1, SenderID: studentID, Text: "See you tomorrow!", ReadBy: []int64{studentID}}, nil)

	resp, err := f.svc.Send(context.Background(), 1, &models.SendMessageRequest{
		SenderID: studentID,
		Text:     "See you tomorrow!",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, []int64{studentID}, resp.ReadBy)
}

func TestSend_EmptyText(t *testing.T) {
	f := newFixtures()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.Send(context.Background(), 1, &models.SendMessageRequest{
			SenderID: studentID,
			Text:     text,
		})
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	f.bookingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSend_NonParticipant(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	_, err := f.svc.Send(context.Background(), 1, &models.SendMessageRequest{
		SenderID: 999,
		Text:     "hi",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSend_TerminalBookingStillWritable(t *testing.T) {
	f := newFixtures()
	// Чат живет и после завершения сессии
	f.expectBooking(domain.StatusCompleted)

	f.messageRepo.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Message{ID: 6, BookingID: 1, SenderID: tutorID, Text: "Thanks!"}, nil)

	_, err := f.svc.Send(context.Background(), 1, &models.SendMessageRequest{
		SenderID: tutorID,
		Text:     "Thanks!",
	})
	assert.NoError(t, err)
}

func TestSend_BookingNotFound(t *testing.T) {
	f := newFixtures()

	f.bookingRepo.On("GetByID", mock.Anything, int64(404)).
		Return(nil, bookingstorage.ErrBookingNotFound)

	_, err := f.svc.Send(context.Background(), 404, &models.SendMessageRequest{
		SenderID: studentID,
		Text:     "hi",
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// List

func TestList(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	f.messageRepo.On("ListByBookingID", mock.Anything, int64(1)).
		Return([]*domain.Message{
			{ID: 5, BookingID: 1, SenderID: studentID, Text: "first"},
			{ID: 6, BookingID: 1, SenderID: tutorID, Text: "second"},
		}, nil)

	resp, err := f.svc.List(context.Background(), 1, tutorID)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "first", resp.Messages[0].Text)
}

// MarkRead

func TestMarkRead(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	f.messageRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Message{ID: 5, BookingID: 1, SenderID: studentID, ReadBy: []int64{studentID}}, nil)
	f.messageRepo.On("MarkRead", mock.Anything, int64(5), tutorID).Return(nil)

	resp, err := f.svc.MarkRead(context.Background(), 1, 5, tutorID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{studentID, tutorID}, resp.ReadBy)
	f.messageRepo.AssertExpectations(t)
}

func TestMarkRead_AlreadyReadIsIdempotent(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	f.messageRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Message{ID: 5, BookingID: 1, SenderID: studentID, ReadBy: []int64{studentID, tutorID}}, nil)

	resp, err := f.svc.MarkRead(context.Background(), 1, 5, tutorID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{studentID, tutorID}, resp.ReadBy)
	f.messageRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkRead_WrongBooking(t *testing.T) {
	f := newFixtures()
	f.expectBooking(domain.StatusConfirmed)

	// Сообщение принадлежит другому бронированию
	f.messageRepo.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Message{ID: 5, BookingID: 2, SenderID: studentID}, nil)

	_, err := f.svc.MarkRead(context.Background(), 1, 5, tutorID)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
