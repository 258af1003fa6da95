package errors

import "errors"

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateEmail = errors.New("customer email already exists")
)
