package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	ruleRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/rule"
	"github.com/tutorlane/TL-BookingService/internal/integrations/identity"
	"github.com/tutorlane/TL-BookingService/internal/service/rules/models"
)

// Service управление еженедельными правилами.
// Активное правило резервирует свой слот у обоих участников; пауза и отмена
// снимают резервацию, причём отмена необратима
type Service struct {
	ruleRepo       RuleRepository
	identityClient IdentityClient
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepository RuleRepository,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:       ruleRepository,
		identityClient: identityClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Create создает новое еженедельное правило
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: rule %d->%d day=%d %02d:%02d by user=%d",
		req.FromUserID, req.ToUserID, req.DayOfWeek, req.HourUTC, req.MinuteUTC, req.ActorID)

	if err := validateSchedule(req.DayOfWeek, req.HourUTC, req.MinuteUTC); err != nil {
		s.logger.Warn("Create: invalid schedule: %v", err)
		return nil, err
	}

	if req.ActorID != req.FromUserID && req.ActorID != req.ToUserID {
		s.logger.Warn("Create: user=%d is not a party of the rule", req.ActorID)
		return nil, ErrAccessDenied
	}

	// 1. Проверяем роли сторон: from всегда студент, to всегда репетитор
	fromUser, err := s.getUser(ctx, req.FromUserID)
	if err != nil {
		return nil, err
	}
	toUser, err := s.getUser(ctx, req.ToUserID)
	if err != nil {
		return nil, err
	}

	if fromUser.Role != domain.RoleStudent || toUser.Role != domain.RoleTutor {
		s.logger.Warn("Create: invalid role pair from=%s to=%s", fromUser.Role, toUser.Role)
		return nil, ErrInvalidRolePair
	}

	var created *domain.RecurringRule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Блокируем создание дубликата на тот же слот
		exists, err := s.ruleRepo.ExistsActiveDuplicate(
			txCtx, req.FromUserID, req.ToUserID,
			time.Weekday(req.DayOfWeek), req.HourUTC, req.MinuteUTC,
		)
		if err != nil {
			s.logger.Error("Create: duplicate check failed: %v", err)
			return fmt.Errorf("%w: Create - duplicate check: %v", ErrInternal, err)
		}
		if exists {
			s.logger.Warn("Create: duplicate rule %d->%d day=%d %02d:%02d",
				req.FromUserID, req.ToUserID, req.DayOfWeek, req.HourUTC, req.MinuteUTC)
			return ErrDuplicateRule
		}

		// 3. Создаем активное правило
		created, err = s.ruleRepo.Create(txCtx, &domain.RecurringRule{
			FromUserID: req.FromUserID,
			ToUserID:   req.ToUserID,
			DayOfWeek:  time.Weekday(req.DayOfWeek),
			HourUTC:    req.HourUTC,
			MinuteUTC:  req.MinuteUTC,
			Status:     domain.RuleStatusActive,
		})
		if err != nil {
			s.logger.Error("Create: failed to create rule: %v", err)
			return fmt.Errorf("%w: Create - create rule: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: rule id=%d created", created.ID)
	return models.FromDomainRule(created), nil
}

// GetByID получает правило. Доступно только его сторонам
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.RuleResponse, error) {
	r, err := s.loadRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if !r.Touches(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to rule id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainRule(r), nil
}

// UpdateStatus переводит правило в новый статус (пауза, возобновление, отмена)
// Отмененное правило реактивировать нельзя
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateRuleStatusRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpdateStatus: rule id=%d -> %s by user=%d", id, req.Status, req.ActorID)

	newStatus, ok := models.ToDomainRuleStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var result *domain.RecurringRule
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		r, err := s.loadRule(txCtx, id)
		if err != nil {
			return err
		}

		if !r.Touches(req.ActorID) {
			s.logger.Warn("UpdateStatus: access denied for user=%d to rule id=%d", req.ActorID, id)
			return ErrAccessDenied
		}

		if r.Status == domain.RuleStatusCanceled {
			s.logger.Warn("UpdateStatus: rule id=%d already canceled", id)
			return ErrRuleCanceled
		}

		if err := s.ruleRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, ruleRepo.ErrRuleNotFound) {
				return ErrRuleNotFound
			}
			s.logger.Error("UpdateStatus: failed to update rule id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - update rule: %v", ErrInternal, err)
		}

		r.Status = newStatus
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: rule id=%d now %s", id, result.Status)
	return models.FromDomainRule(result), nil
}

func (s *Service) loadRule(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	r, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("rule id=%d not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("repository error for rule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return r, nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.identityClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			s.logger.Warn("user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("identity error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: identity error: %v", ErrInternal, err)
	}
	return u, nil
}

func validateSchedule(day, hour, minute int) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: day of week %d out of range", ErrInvalidSchedule, day)
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidSchedule, hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidSchedule, minute)
	}
	return nil
}
