package materialize_rules

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
	"github.com/tutorlane/TL-BookingService/pkg/ptr"
	"github.com/tutorlane/TL-BookingService/pkg/ukclock"
)

// UseCase use case еженедельной материализации правил.
// Для каждого активного правила создает платное бронирование-предложение на
// следующее вхождение. Watermark last_booking_created_at защищает от
// повторного прогона в пределах одной ISO-недели, поэтому запуск идемпотентен
type UseCase struct {
	ruleRepo       RuleRepository
	bookingCreator BookingCreator
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ruleRepo RuleRepository, bookingCreator BookingCreator, logger Logger) *UseCase {
	return &UseCase{
		ruleRepo:       ruleRepo,
		bookingCreator: bookingCreator,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет проход по всем активным правилам
// Ошибка одного правила не прерывает проход: остальные правила обрабатываются,
// итог попадает в отчет
func (uc *UseCase) Execute(ctx context.Context) (*Report, error) {
	now := uc.timeProvider.Now()
	weekStart := ukclock.WeekStartUTC(now)

	rules, err := uc.ruleRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("MaterializeRules: failed to list active rules: %v", err)
		return nil, fmt.Errorf("%w: failed to list active rules: %v", ErrInternal, err)
	}

	report := &Report{TotalRules: len(rules)}
	uc.logger.Info("MaterializeRules: processing %d active rules, week start %s",
		len(rules), weekStart.Format("2006-01-02"))

	for _, rule := range rules {
		// Правило уже материализовано на этой ISO-неделе
		if rule.LastBookingCreatedAt != nil && !rule.LastBookingCreatedAt.Before(weekStart) {
			report.SkippedCount++
			continue
		}

		if err := uc.materialize(ctx, rule, now); err != nil {
			uc.logger.Error("MaterializeRules: rule id=%d failed: %v", rule.ID, err)
			report.ErrorCount++
			continue
		}

		report.ProcessedCount++
	}

	uc.logger.Info("MaterializeRules: done, total=%d, processed=%d, skipped=%d, errors=%d",
		report.TotalRules, report.ProcessedCount, report.SkippedCount, report.ErrorCount)

	return report, nil
}

func (uc *UseCase) materialize(ctx context.Context, rule *domain.RecurringRule, now time.Time) error {
	next := rule.NextOccurrence(now)

	uc.logger.Info("MaterializeRules: rule id=%d -> booking at %s", rule.ID, next.Format(time.RFC3339))

	// Бронирование создается от имени студента (владельца правила) и несет
	// ссылку на правило: проверка коллизий с правилами для него отключается,
	// иначе правило отклонило бы собственное бронирование
	_, err := uc.bookingCreator.Execute(ctx, &create_booking.Request{
		ActorID:         rule.FromUserID,
		FromUserID:      rule.FromUserID,
		ToUserID:        rule.ToUserID,
		StartTimestamp:  next.UnixMilli(),
		BookingType:     string(domain.TypePaid),
		RecurringRuleID: ptr.Ptr(rule.ID),
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	if err := uc.ruleRepo.StampMaterialized(ctx, rule.ID, now); err != nil {
		return fmt.Errorf("stamp rule: %w", err)
	}

	return nil
}
