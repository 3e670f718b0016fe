package materialize_rules

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("materialize_rules: internal error")
)
