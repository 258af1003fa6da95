package errors

import "errors"

var (
	ErrNotFound = errors.New("room not found")

	ErrDuplicateNumber = errors.New("room number already exists")

	// ErrUnavailable is returned when a conditional status transition matched no room.
	ErrUnavailable = errors.New("room is not available")
)
