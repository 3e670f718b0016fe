package conflicts

import "errors"

var (
	// ErrRecurringConflict возвращается, когда предложенное время совпадает
	// с зарезервированным слотом активного еженедельного правила
	ErrRecurringConflict = errors.New("conflicts: time is reserved by a recurring rule")

	// ErrBookingOverlap возвращается, когда предложенный интервал пересекается
	// с существующим бронированием одной из сторон
	ErrBookingOverlap = errors.New("conflicts: time overlaps an existing booking")

	// ErrPastTime возвращается, когда предложенное время начала не в будущем
	ErrPastTime = errors.New("conflicts: start time must be in the future")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts: internal error")
)
