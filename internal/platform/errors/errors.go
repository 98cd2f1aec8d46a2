// Package apperrors holds the sentinel errors shared across modules.
// Callers match with errors.Is; usecases wrap them with context.
package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
)
