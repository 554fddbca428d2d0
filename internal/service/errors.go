package service

import "errors"

var (
	// ErrValidation marks malformed input, rejected before anything is persisted
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a failed write that the request cannot do without
	ErrStorage = errors.New("storage failure")
	// ErrNotFound marks a missing property or session
	ErrNotFound = errors.New("not found")
)
