package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда один из участников не найден в identity
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidRolePair возвращается, когда пара не состоит из студента и репетитора
	ErrInvalidRolePair = errors.New("create_booking: booking requires one student and one tutor")

	// ErrAccessDenied возвращается, когда создатель не является участником бронирования
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrFreeSessionPending возвращается, когда у пары уже есть незавершенная бесплатная сессия
	ErrFreeSessionPending = errors.New("create_booking: free session already in progress for this pair")

	// ErrFreeSessionUsed возвращается при попытке повторной бесплатной сессии после завершенной
	ErrFreeSessionUsed = errors.New("create_booking: free session already completed for this pair")

	// ErrFreeSessionRequired возвращается при попытке платной сессии до завершения бесплатной
	ErrFreeSessionRequired = errors.New("create_booking: free introductory session required first")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
