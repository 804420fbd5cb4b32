package model

import "errors"

var (
	// ErrNotValid is returned when a configuration or request is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrTimeout is returned when a maintenance step exceeds its time budget.
	ErrTimeout = errors.New("timed out")
)
