package messages

import "errors"

var (
	ErrBookingNotFound = errors.New("messages: booking not found")
	ErrMessageNotFound = errors.New("messages: message not found")
	ErrAccessDenied    = errors.New("messages: access denied")
	ErrEmptyText       = errors.New("messages: empty message text")
	ErrInternal        = errors.New("messages: internal error")
)
