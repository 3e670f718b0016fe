package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/ukclock"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     RuleRepository
	timeProvider TimeProvider
	logger       Logger

	stepMinutes int
	openHour    int
	closeHour   int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	stepMinutes int,
	openHour int,
	closeHour int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		stepMinutes:  stepMinutes,
		openHour:     openHour,
		closeHour:    closeHour,
	}
}

// Execute выполняет use case получения слотов
// День задается локальной (UK) датой; границы рабочего дня пересчитываются
// в UTC отдельно для каждой даты, поэтому переход на летнее время не
// смещает слоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, student=%d, tutor=%d, date=%s, type=%s",
		req.UserID, req.StudentID, req.TutorID, req.Date, req.BookingType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	day, err := ukclock.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	bookingType := domain.BookingType(req.BookingType)
	duration := domain.SessionDuration(bookingType)
	now := uc.timeProvider.Now()

	// 2. Занятость обеих сторон: бронирования и еженедельные правила
	bookings, err := uc.bookingRepo.GetOccupyingByUsers(ctx, req.StudentID, req.TutorID, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	rules, err := uc.ruleRepo.GetActiveByUsers(ctx, req.StudentID, req.TutorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
	}

	// 3. Генерируем кандидатов рабочего дня и фильтруем занятые
	open, close := ukclock.WorkingWindow(day, uc.openHour, uc.closeHour)
	step := time.Duration(uc.stepMinutes) * time.Minute

	available := generateCandidates(open, close, duration, step, now, bookings, rules)
	busy := collectBusySlots(ukclock.DayStart(day), req.StudentID, req.TutorID, bookings, rules)

	uc.logger.Info("GetAvailableSlots: date=%s, %d available, %d busy", req.Date, len(available), len(busy))

	return &Response{
		Date:            req.Date,
		DurationMinutes: domain.SessionDurationMinutes(bookingType),
		Available:       available,
		Busy:            busy,
	}, nil
}
