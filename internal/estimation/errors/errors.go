package errors

import "errors"

var (
	// ErrInvalidToken is returned for token numbers below 1; a wait
	// estimate divides by the token number.
	ErrInvalidToken = errors.New("token number must be positive")
)
