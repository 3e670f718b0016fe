package create_booking

import (
	"fmt"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/internal/service/eligibility"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.FromUserID <= 0 {
		return fmt.Errorf("%w: fromUserID must be positive", ErrInvalidInput)
	}

	if req.ToUserID <= 0 {
		return fmt.Errorf("%w: toUserID must be positive", ErrInvalidInput)
	}

	if req.FromUserID == req.ToUserID {
		return fmt.Errorf("%w: participants must be different users", ErrInvalidInput)
	}

	if req.StartTimestamp <= 0 {
		return fmt.Errorf("%w: timestamp is required", ErrInvalidInput)
	}

	if !domain.BookingType(req.BookingType).Valid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	return nil
}

// validateParticipants проверяет пару ролей: from всегда студент, to всегда репетитор
func validateParticipants(fromUser, toUser *domain.User) error {
	if fromUser.Role != domain.RoleStudent || toUser.Role != domain.RoleTutor {
		return ErrInvalidRolePair
	}
	return nil
}

// validateEligibility сопоставляет запрошенный тип сессии с допуском пары
func validateEligibility(e *eligibility.Eligibility, bookingType domain.BookingType) error {
	if e.HasActiveFreeBooking {
		return ErrFreeSessionPending
	}

	if bookingType == domain.TypeFree && !e.CanCreateFree {
		return ErrFreeSessionUsed
	}

	if bookingType == domain.TypePaid && !e.CanCreatePaid {
		return ErrFreeSessionRequired
	}

	return nil
}
