package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	identityClient "github.com/tutorlane/TL-BookingService/internal/integrations/identity"
	"github.com/tutorlane/TL-BookingService/internal/service/conflicts"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	eligibility     EligibilityChecker
	conflictChecker ConflictChecker
	identityClient  IdentityClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	eligibilityChecker EligibilityChecker,
	conflictChecker ConflictChecker,
	identity IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		eligibility:     eligibilityChecker,
		conflictChecker: conflictChecker,
		identityClient:  identity,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: допуск пары, сканирование конфликтов и
// вставка выполняются атомарно, чтобы два конкурирующих запроса не создали
// пересекающиеся сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, from=%d, to=%d, type=%s, ts=%d",
		req.ActorID, req.FromUserID, req.ToUserID, req.BookingType, req.StartTimestamp)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	bookingType := domain.BookingType(req.BookingType)
	startsAt := time.UnixMilli(req.StartTimestamp).UTC()
	now := uc.timeProvider.Now()

	// 2. Инициатор должен быть одной из сторон
	if req.ActorID != req.FromUserID && req.ActorID != req.ToUserID {
		uc.logger.Warn("CreateBooking: actor=%d is not a participant", req.ActorID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем роли сторон в identity
	fromUser, err := uc.getUser(ctx, req.FromUserID)
	if err != nil {
		return nil, err
	}
	toUser, err := uc.getUser(ctx, req.ToUserID)
	if err != nil {
		return nil, err
	}

	if err := validateParticipants(fromUser, toUser); err != nil {
		uc.logger.Warn("CreateBooking: invalid role pair from=%s to=%s", fromUser.Role, toUser.Role)
		return nil, err
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Допуск пары: правило бесплатной вводной сессии
		elig, err := uc.eligibility.Compute(txCtx, req.FromUserID, req.ToUserID)
		if err != nil {
			uc.logger.Error("CreateBooking: eligibility check failed: %v", err)
			return fmt.Errorf("%w: eligibility check: %v", ErrInternal, err)
		}

		if err := validateEligibility(elig, bookingType); err != nil {
			uc.logger.Warn("CreateBooking: eligibility denied for pair (%d, %d): %v",
				req.FromUserID, req.ToUserID, err)
			return err
		}

		// 4.2. Сканирование конфликтов расписания обеих сторон.
		// Бронирования от материализатора создаются на время собственного
		// правила, поэтому проверку правил для них пропускаем
		if err := uc.conflictChecker.CheckWindow(txCtx, conflicts.CheckRequest{
			Start:         startsAt,
			Type:          bookingType,
			FromUserID:    req.FromUserID,
			ToUserID:      req.ToUserID,
			SkipRuleCheck: req.RecurringRuleID != nil,
			Now:           now,
		}); err != nil {
			return err
		}

		// 4.3. Создаем бронирование-предложение
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			FromUserID:      req.FromUserID,
			ToUserID:        req.ToUserID,
			StartsAt:        startsAt,
			BookingType:     bookingType,
			Status:          domain.StatusPending,
			LastActionBy:    req.ActorID,
			RecurringRuleID: req.RecurringRuleID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 4.4. Первое событие истории
		if _, err := uc.bookingRepo.AppendEvent(txCtx, &domain.BookingEvent{
			BookingID:    created.ID,
			Type:         domain.EventCreated,
			ActingUserID: req.ActorID,
			Metadata: map[string]interface{}{
				"bookingType": string(bookingType),
				"timestamp":   startsAt.UnixMilli(),
			},
		}); err != nil {
			uc.logger.Error("CreateBooking: failed to append event: %v", err)
			return fmt.Errorf("%w: failed to append event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		FromUserID:      result.FromUserID,
		ToUserID:        result.ToUserID,
		Timestamp:       result.StartsAt.UnixMilli(),
		EndTimestamp:    result.EndsAt().UnixMilli(),
		DurationMinutes: int(result.Duration().Minutes()),
		BookingType:     string(result.BookingType),
		Status:          string(result.Status),
		LastActionBy:    result.LastActionBy,
		RecurringRuleID: result.RecurringRuleID,
		CreatedAt:       result.CreatedAt.UnixMilli(),
	}, nil
}

func (uc *UseCase) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := uc.identityClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return u, nil
}
