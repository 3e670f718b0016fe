package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	bookingRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	messageRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/message"
	"github.com/tutorlane/TL-BookingService/internal/service/messages/models"
)

// Service чат, привязанный к бронированию.
// Писать и читать могут только участники бронирования; чат остается
// доступным и после перехода бронирования в финальный статус
type Service struct {
	messageRepo MessageRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса сообщений
func NewService(messageRepository MessageRepository, bookingRepository BookingRepository, logger Logger) *Service {
	return &Service{
		messageRepo: messageRepository,
		bookingRepo: bookingRepository,
		logger:      logger,
	}
}

// Send отправляет сообщение в чат бронирования
// Отправитель сразу считается прочитавшим собственное сообщение
func (s *Service) Send(ctx context.Context, bookingID int64, req *models.SendMessageRequest) (*models.MessageResponse, error) {
	s.logger.Info("Send: message to booking id=%d from user=%d", bookingID, req.SenderID)

	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}

	if err := s.requireParticipant(ctx, bookingID, req.SenderID); err != nil {
		return nil, err
	}

	created, err := s.messageRepo.Create(ctx, &domain.Message{
		BookingID: bookingID,
		SenderID:  req.SenderID,
		Text:      req.Text,
	})
	if err != nil {
		s.logger.Error("Send: failed to create message for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Send - create message: %v", ErrInternal, err)
	}

	return models.FromDomainMessage(created), nil
}

// List возвращает все сообщения чата бронирования в порядке отправки
func (s *Service) List(ctx context.Context, bookingID int64, userID int64) (*models.MessageListResponse, error) {
	s.logger.Info("List: messages of booking id=%d for user=%d", bookingID, userID)

	if err := s.requireParticipant(ctx, bookingID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.messageRepo.ListByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("List: failed to list messages for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: List - list messages: %v", ErrInternal, err)
	}

	return models.FromDomainMessageList(msgs), nil
}

// MarkRead отмечает сообщение прочитанным пользователем
// Повторная отметка не ошибка
func (s *Service) MarkRead(ctx context.Context, bookingID, messageID, userID int64) (*models.MessageResponse, error) {
	s.logger.Info("MarkRead: message id=%d of booking id=%d by user=%d", messageID, bookingID, userID)

	if err := s.requireParticipant(ctx, bookingID, userID); err != nil {
		return nil, err
	}

	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, messageRepo.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		s.logger.Error("MarkRead: failed to get message id=%d: %v", messageID, err)
		return nil, fmt.Errorf("%w: MarkRead - get message: %v", ErrInternal, err)
	}

	if m.BookingID != bookingID {
		s.logger.Warn("MarkRead: message id=%d does not belong to booking id=%d", messageID, bookingID)
		return nil, ErrMessageNotFound
	}

	if !m.IsReadBy(userID) {
		if err := s.messageRepo.MarkRead(ctx, messageID, userID); err != nil {
			if errors.Is(err, messageRepo.ErrMessageNotFound) {
				return nil, ErrMessageNotFound
			}
			s.logger.Error("MarkRead: failed to mark message id=%d: %v", messageID, err)
			return nil, fmt.Errorf("%w: MarkRead - mark message: %v", ErrInternal, err)
		}
		m.ReadBy = append(m.ReadBy, userID)
	}

	return models.FromDomainMessage(m), nil
}

func (s *Service) requireParticipant(ctx context.Context, bookingID, userID int64) error {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if !b.IsParticipant(userID) {
		s.logger.Warn("user=%d is not a participant of booking id=%d", userID, bookingID)
		return ErrAccessDenied
	}

	return nil
}
