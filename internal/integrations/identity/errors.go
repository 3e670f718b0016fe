package identity

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("identity.client: user not found")

	// ErrInvalidResponse возвращается при некорректном ответе identity-сервиса
	ErrInvalidResponse = errors.New("identity.client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity.client: internal error")
)
