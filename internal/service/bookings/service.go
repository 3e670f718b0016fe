package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	bookingRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/payment"
	"github.com/tutorlane/TL-BookingService/internal/service/bookings/models"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

// Service машина состояний бронирования.
// Каждый переход выполняется в одной сериализуемой транзакции: чтение текущего
// статуса, проверка предусловий, изменение статуса и добавление события истории.
// Конкурирующий переход над тем же бронированием увидит уже обновленный статус
// и провалит свою проверку предусловий
type Service struct {
	bookingRepo     BookingRepository
	paymentRepo     PaymentRepository
	conflictChecker ConflictChecker
	identityClient  IdentityClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	paymentRepository PaymentRepository,
	conflictChecker ConflictChecker,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepository,
		paymentRepo:     paymentRepository,
		conflictChecker: conflictChecker,
		identityClient:  identityClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронирование с историей событий
// Доступно только участникам
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	events, err := s.bookingRepo.ListEvents(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list events for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list events: %v", ErrInternal, err)
	}
	b.Events = events

	return models.FromDomainBooking(b), nil
}

// GetUserBookings получает бронирования пользователя (в любой роли)
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Accept принимает предложение бронирования
// Доступно только стороне, не совершавшей последнее действие.
// Бесплатная сессия подтверждается сразу, платная переходит к оплате
func (s *Service) Accept(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("Accept: booking id=%d by user=%d", id, actorID)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.requireRespondent(b, actorID); err != nil {
			return err
		}

		newStatus := domain.StatusConfirmed
		if b.BookingType == domain.TypePaid {
			newStatus = domain.StatusAwaitingPayment
		}

		if err := s.transition(txCtx, b, newStatus, actorID, domain.EventAccepted, map[string]interface{}{
			"fromStatus": string(b.Status),
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Accept: booking id=%d accepted by user=%d, status=%s", id, actorID, result.Status)
	return models.FromDomainBooking(result), nil
}

// Reject отклоняет предложение бронирования
// Доступно только стороне, не совершавшей последнее действие
func (s *Service) Reject(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("Reject: booking id=%d by user=%d", id, actorID)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.requireRespondent(b, actorID); err != nil {
			return err
		}

		if err := s.transition(txCtx, b, domain.StatusRejected, actorID, domain.EventRejected, map[string]interface{}{
			"fromStatus": string(b.Status),
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: booking id=%d rejected by user=%d", id, actorID)
	return models.FromDomainBooking(result), nil
}

// Reschedule предлагает новое время сессии
// Доступно любому участнику; принять или отклонить перенос должна другая сторона
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.ReschedulePayload) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d by user=%d to %d", id, req.ActorID, req.NewStartsAt)

	newStart := millisToTime(req.NewStartsAt)
	now := s.timeProvider.Now()

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if !b.IsParticipant(req.ActorID) {
			s.logger.Warn("Reschedule: access denied for user=%d to booking id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if b.Status != domain.StatusPending && b.Status != domain.StatusAwaitingReschedule {
			s.logger.Warn("Reschedule: booking id=%d status=%s does not permit reschedule", id, b.Status)
			return fmt.Errorf("%w: cannot reschedule from %s", ErrInvalidTransition, b.Status)
		}

		// Переносимое бронирование исключается из сканирования пересечений,
		// иначе оно конфликтовало бы со своим собственным старым временем
		if err := s.conflictChecker.CheckWindow(txCtx, conflicts.CheckRequest{
			Start:            newStart,
			Type:             b.BookingType,
			FromUserID:       b.FromUserID,
			ToUserID:         b.ToUserID,
			ExcludeBookingID: &b.ID,
			Now:              now,
		}); err != nil {
			return err
		}

		oldStart := b.StartsAt

		if err := s.bookingRepo.UpdateSchedule(txCtx, b.ID, newStart, domain.StatusAwaitingReschedule, req.ActorID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Reschedule: failed to update booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Reschedule - update schedule: %v", ErrInternal, err)
		}

		if _, err := s.bookingRepo.AppendEvent(txCtx, &domain.BookingEvent{
			BookingID:    b.ID,
			Type:         domain.EventRescheduled,
			ActingUserID: req.ActorID,
			Metadata: map[string]interface{}{
				"oldTime":    oldStart.UnixMilli(),
				"newTime":    newStart.UnixMilli(),
				"proposedBy": req.ActorID,
			},
		}); err != nil {
			s.logger.Error("Reschedule: failed to append event for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Reschedule - append event: %v", ErrInternal, err)
		}

		b.StartsAt = newStart
		b.Status = domain.StatusAwaitingReschedule
		b.LastActionBy = req.ActorID
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reschedule: booking id=%d moved to %s by user=%d",
		id, result.StartsAt.Format("2006-01-02 15:04"), req.ActorID)
	return models.FromDomainBooking(result), nil
}

// Cancel отменяет бронирование
// Доступно любому участнику из любого нефинального статуса
func (s *Service) Cancel(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d by user=%d", id, actorID)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if !b.IsParticipant(actorID) {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", actorID, id)
			return ErrAccessDenied
		}

		if b.IsTerminal() {
			s.logger.Warn("Cancel: booking id=%d already terminal (status=%s)", id, b.Status)
			return fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, b.Status)
		}

		if err := s.transition(txCtx, b, domain.StatusCanceled, actorID, domain.EventCanceled, map[string]interface{}{
			"fromStatus": string(b.Status),
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled by user=%d", id, actorID)
	return models.FromDomainBooking(result), nil
}

// Complete вручную завершает подтвержденную сессию
// Доступно только репетитору
func (s *Service) Complete(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("Complete: booking id=%d by user=%d", id, actorID)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if !b.IsParticipant(actorID) {
			return ErrAccessDenied
		}

		if actorID != b.ToUserID {
			s.logger.Warn("Complete: user=%d is not the tutor of booking id=%d", actorID, id)
			return ErrTutorOnly
		}

		if b.Status != domain.StatusConfirmed {
			s.logger.Warn("Complete: booking id=%d status=%s is not confirmed", id, b.Status)
			return fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, b.Status)
		}

		if err := s.transition(txCtx, b, domain.StatusCompleted, actorID, domain.EventCompleted, map[string]interface{}{
			"auto": false,
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: booking id=%d completed by tutor=%d", id, actorID)
	return models.FromDomainBooking(result), nil
}

// CompleteElapsed автоматически завершает подтвержденные сессии, чьё время
// окончания уже прошло. Вызывается системным заданием; каждая сессия
// завершается в собственной транзакции, событие пишется от имени репетитора
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	candidates, err := s.bookingRepo.GetConfirmedStartedBefore(ctx, now)
	if err != nil {
		s.logger.Error("CompleteElapsed: failed to get candidates: %v", err)
		return 0, fmt.Errorf("%w: CompleteElapsed - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, candidate := range candidates {
		if candidate.EndsAt().After(now) {
			continue
		}

		id := candidate.ID
		transitioned := false
		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			b, err := s.loadBooking(txCtx, id)
			if err != nil {
				return err
			}

			// Статус мог измениться между сканом и транзакцией
			if b.Status != domain.StatusConfirmed {
				return nil
			}

			if err := s.transition(txCtx, b, domain.StatusCompleted, b.ToUserID, domain.EventCompleted, map[string]interface{}{
				"auto": true,
			}); err != nil {
				return err
			}
			transitioned = true
			return nil
		})
		if err != nil {
			s.logger.Error("CompleteElapsed: failed to complete booking id=%d: %v", id, err)
			continue
		}
		if transitioned {
			completed++
		}
	}

	if completed > 0 {
		s.logger.Info("CompleteElapsed: completed %d elapsed sessions", completed)
	}
	return completed, nil
}

// InitiatePayment начинает оплату платной сессии
// Доступно только плательщику (студенту) из статуса awaiting_payment
func (s *Service) InitiatePayment(ctx context.Context, id int64, actorID int64, req *models.PaymentPayload) (*models.BookingResponse, error) {
	s.logger.Info("InitiatePayment: booking id=%d by user=%d, ref=%s", id, actorID, req.ProviderRef)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if !b.IsParticipant(actorID) {
			return ErrAccessDenied
		}

		if b.BookingType != domain.TypePaid {
			return ErrNotPaidBooking
		}

		if actorID != b.FromUserID {
			s.logger.Warn("InitiatePayment: user=%d is not the payer of booking id=%d", actorID, id)
			return ErrPayerOnly
		}

		if b.Status != domain.StatusAwaitingPayment {
			s.logger.Warn("InitiatePayment: booking id=%d status=%s", id, b.Status)
			return fmt.Errorf("%w: cannot initiate payment from %s", ErrInvalidTransition, b.Status)
		}

		if _, err := s.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:   b.ID,
			ProviderRef: req.ProviderRef,
			AmountCents: req.AmountCents,
			Currency:    req.Currency,
			Status:      domain.PaymentStatusProcessing,
		}); err != nil {
			s.logger.Error("InitiatePayment: failed to create payment for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: InitiatePayment - create payment: %v", ErrInternal, err)
		}

		if err := s.transition(txCtx, b, domain.StatusProcessingPayment, actorID, domain.EventPaymentInitiated, map[string]interface{}{
			"providerRef": req.ProviderRef,
			"amountCents": req.AmountCents,
			"currency":    req.Currency,
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("InitiatePayment: booking id=%d moved to processing_payment", id)
	return models.FromDomainBooking(result), nil
}

// MarkPaymentSucceeded обрабатывает вебхук успешной оплаты
// Событие пишется от имени плательщика, а не системы
func (s *Service) MarkPaymentSucceeded(ctx context.Context, id int64, req *models.PaymentPayload) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaymentSucceeded: booking id=%d, ref=%s", id, req.ProviderRef)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if b.BookingType != domain.TypePaid {
			return ErrNotPaidBooking
		}

		if b.Status != domain.StatusProcessingPayment {
			s.logger.Warn("MarkPaymentSucceeded: booking id=%d status=%s", id, b.Status)
			return fmt.Errorf("%w: cannot confirm payment from %s", ErrInvalidTransition, b.Status)
		}

		if err := s.updateLatestPayment(txCtx, b.ID, domain.PaymentStatusSucceeded); err != nil {
			return err
		}

		if err := s.transition(txCtx, b, domain.StatusConfirmed, b.FromUserID, domain.EventPaymentSucceeded, map[string]interface{}{
			"providerRef": req.ProviderRef,
			"amountCents": req.AmountCents,
			"currency":    req.Currency,
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkPaymentSucceeded: booking id=%d confirmed", id)
	return models.FromDomainBooking(result), nil
}

// MarkPaymentFailed обрабатывает вебхук неуспешной оплаты
// Бронирование возвращается в awaiting_payment для повторной попытки
func (s *Service) MarkPaymentFailed(ctx context.Context, id int64, req *models.PaymentPayload) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaymentFailed: booking id=%d", id)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if b.BookingType != domain.TypePaid {
			return ErrNotPaidBooking
		}

		if b.Status != domain.StatusProcessingPayment && b.Status != domain.StatusAwaitingPayment {
			s.logger.Warn("MarkPaymentFailed: booking id=%d status=%s", id, b.Status)
			return fmt.Errorf("%w: cannot fail payment from %s", ErrInvalidTransition, b.Status)
		}

		if err := s.updateLatestPayment(txCtx, b.ID, domain.PaymentStatusFailed); err != nil {
			return err
		}

		metadata := map[string]interface{}{}
		if req.Reason != nil {
			metadata["reason"] = *req.Reason
		}

		if err := s.transition(txCtx, b, domain.StatusAwaitingPayment, b.FromUserID, domain.EventPaymentFailed, metadata); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkPaymentFailed: booking id=%d returned to awaiting_payment", id)
	return models.FromDomainBooking(result), nil
}

// RefundPayment обрабатывает возврат платежа по платной сессии.
// Возврат по подтвержденному бронированию отменяет его; по завершённому или
// уже отмененному — только добавляет событие, не меняя финальный статус
// (единственное исключение из неизменяемости финальных статусов).
// actorID == 0 означает возврат со стороны провайдера: событие пишется
// от имени плательщика
func (s *Service) RefundPayment(ctx context.Context, id int64, actorID int64, req *models.PaymentPayload) (*models.BookingResponse, error) {
	s.logger.Info("RefundPayment: booking id=%d by user=%d, ref=%s", id, actorID, req.ProviderRef)

	var result *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.loadBooking(txCtx, id)
		if err != nil {
			return err
		}

		if actorID != 0 && !b.IsParticipant(actorID) {
			return ErrAccessDenied
		}

		actingUserID := actorID
		if actingUserID == 0 {
			actingUserID = b.FromUserID
		}

		if b.BookingType != domain.TypePaid {
			return ErrNotPaidBooking
		}

		switch b.Status {
		case domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCanceled:
			// Допустимые статусы для возврата
		default:
			s.logger.Warn("RefundPayment: booking id=%d status=%s", id, b.Status)
			return fmt.Errorf("%w: cannot refund from %s", ErrInvalidTransition, b.Status)
		}

		if err := s.updateLatestPayment(txCtx, b.ID, domain.PaymentStatusRefunded); err != nil {
			return err
		}

		newStatus := b.Status
		if b.Status == domain.StatusConfirmed {
			newStatus = domain.StatusCanceled
		}

		if err := s.transition(txCtx, b, newStatus, actingUserID, domain.EventPaymentRefunded, map[string]interface{}{
			"providerRef": req.ProviderRef,
			"amountCents": req.AmountCents,
			"currency":    req.Currency,
		}); err != nil {
			return err
		}

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RefundPayment: booking id=%d refunded, status=%s", id, result.Status)
	return models.FromDomainBooking(result), nil
}

// VerifyParticipant проверяет участие пользователя в бронировании и возвращает
// данные обеих сторон для выдачи видео/доски. Окно подключения проверяет
// сам выдающий сервис по timestamp и длительности из ответа
func (s *Service) VerifyParticipant(ctx context.Context, id int64, userID int64) (*models.ParticipantsResponse, error) {
	s.logger.Info("VerifyParticipant: booking id=%d, user=%d", id, userID)

	b, err := s.loadBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.IsParticipant(userID) {
		s.logger.Warn("VerifyParticipant: user=%d is not a participant of booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	student, err := s.identityClient.GetUser(ctx, b.FromUserID)
	if err != nil {
		s.logger.Error("VerifyParticipant: failed to get student id=%d: %v", b.FromUserID, err)
		return nil, fmt.Errorf("%w: VerifyParticipant - get student: %v", ErrInternal, err)
	}

	tutor, err := s.identityClient.GetUser(ctx, b.ToUserID)
	if err != nil {
		s.logger.Error("VerifyParticipant: failed to get tutor id=%d: %v", b.ToUserID, err)
		return nil, fmt.Errorf("%w: VerifyParticipant - get tutor: %v", ErrInternal, err)
	}

	return &models.ParticipantsResponse{
		Booking: models.FromDomainBooking(b),
		Tutor:   models.FromDomainUser(tutor),
		Student: models.FromDomainUser(student),
	}, nil
}

// Вспомогательные методы

func (s *Service) loadBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return b, nil
}

// requireRespondent проверяет предусловия ответа на предложение:
// участник, ожидающий ответа статус и не автор последнего действия
func (s *Service) requireRespondent(b *domain.Booking, actorID int64) error {
	if !b.IsParticipant(actorID) {
		return ErrAccessDenied
	}

	if b.Status != domain.StatusPending && b.Status != domain.StatusAwaitingReschedule {
		return fmt.Errorf("%w: cannot respond from %s", ErrInvalidTransition, b.Status)
	}

	if b.LastActionBy == actorID {
		return ErrNotYourTurn
	}

	return nil
}

// transition применяет переход: патч статуса и событие истории в одной транзакции
func (s *Service) transition(
	ctx context.Context,
	b *domain.Booking,
	newStatus domain.BookingStatus,
	actorID int64,
	eventType domain.EventType,
	metadata map[string]interface{},
) error {
	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, newStatus, actorID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("transition: failed to update booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: transition - update status: %v", ErrInternal, err)
	}

	if _, err := s.bookingRepo.AppendEvent(ctx, &domain.BookingEvent{
		BookingID:    b.ID,
		Type:         eventType,
		ActingUserID: actorID,
		Metadata:     metadata,
	}); err != nil {
		s.logger.Error("transition: failed to append event for booking id=%d: %v", b.ID, err)
		return fmt.Errorf("%w: transition - append event: %v", ErrInternal, err)
	}

	b.Status = newStatus
	b.LastActionBy = actorID
	return nil
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (s *Service) updateLatestPayment(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	p, err := s.paymentRepo.GetLatestByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// Платежная запись могла не создаваться (например, возврат по
			// данным провайдера) — событие бронирования всё равно пишем
			return nil
		}
		s.logger.Error("updateLatestPayment: failed to get payment for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: get payment: %v", ErrInternal, err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, p.ID, status); err != nil {
		s.logger.Error("updateLatestPayment: failed to update payment id=%d: %v", p.ID, err)
		return fmt.Errorf("%w: update payment: %v", ErrInternal, err)
	}

	return nil
}
