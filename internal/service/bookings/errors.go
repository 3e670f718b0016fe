package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования
	ErrAccessDenied = errors.New("access denied")

	// ErrNotYourTurn возвращается, когда на предложение пытается ответить
	// его же автор: accept/reject доступны только другой стороне
	ErrNotYourTurn = errors.New("the other party must respond to this booking")

	// ErrInvalidTransition возвращается при переходе из статуса, который его не допускает
	ErrInvalidTransition = errors.New("booking status does not permit this action")

	// ErrTutorOnly возвращается, когда завершить сессию пытается не репетитор
	ErrTutorOnly = errors.New("only the tutor can complete a session")

	// ErrPayerOnly возвращается, когда оплату инициирует не плательщик
	ErrPayerOnly = errors.New("only the paying student can initiate payment")

	// ErrNotPaidBooking возвращается при платежной операции над бесплатной сессией
	ErrNotPaidBooking = errors.New("payment operations apply to paid bookings only")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
