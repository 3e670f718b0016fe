package eligibility

import (
	"context"
	"fmt"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/ptr"
)

// Eligibility какие типы бронирований пара пользователей может создать следующими
type Eligibility struct {
	CanCreateFree        bool
	CanCreatePaid        bool
	HasActiveFreeBooking bool
}

// Service движок допусков: бесплатная вводная сессия должна состояться ровно
// один раз, и только её завершение открывает платные сессии между парой
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр движка допусков
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Compute вычисляет допуск пары. Правила проверяются по приоритету,
// срабатывает первое подходящее:
//  1. есть "живая" бесплатная сессия — ничего создавать нельзя;
//  2. бесплатная сессия завершена — навсегда только платные;
//  3. бесплатная была отменена или отклонена — можно повторить бесплатную;
//  4. истории нет — первая сессия пары обязана быть бесплатной
func (s *Service) Compute(ctx context.Context, userA, userB int64) (*Eligibility, error) {
	freeBookings, err := s.bookingRepo.GetByPair(ctx, userA, userB, ptr.Ptr(domain.TypeFree))
	if err != nil {
		s.logger.Error("Compute: failed to get free bookings for pair (%d, %d): %v", userA, userB, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 1. Бесплатная сессия "в полёте" блокирует любые новые бронирования
	for _, b := range freeBookings {
		if b.OccupiesSlot() {
			return &Eligibility{HasActiveFreeBooking: true}, nil
		}
	}

	// 2. Завершённая бесплатная сессия открывает платные и закрывает бесплатные
	for _, b := range freeBookings {
		if b.Status == domain.StatusCompleted {
			return &Eligibility{CanCreatePaid: true}, nil
		}
	}

	// 3–4. Бесплатная не состоялась (отменена/отклонена) либо истории нет —
	// в обоих случаях следующая сессия должна быть бесплатной
	return &Eligibility{CanCreateFree: true}, nil
}
