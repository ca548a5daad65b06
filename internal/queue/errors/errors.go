package errors

import "errors"

var (
	ErrInvalidDate = errors.New("queue date must be YYYY-MM-DD")

	ErrInvalidToken = errors.New("now serving token must not be negative")

	// ErrStaleAdvance is returned when an advance would move the now
	// serving pointer backwards. The stored pointer is left unchanged.
	ErrStaleAdvance = errors.New("queue pointer cannot move backwards")
)
