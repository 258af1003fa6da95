package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidStay = errors.New("check-out date must be after check-in date")
)
