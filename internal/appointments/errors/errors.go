package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrMissingRequiredField = errors.New("missing required field")

	ErrUnknownDoctor = errors.New("doctor does not exist")
)
