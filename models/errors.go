package models

import "errors"

// ValidationError is a user input problem. It is shown as a warning and never
// changes session state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrEmptyInput        = NewValidationError("type a message first")
	ErrEmptyRequest      = NewValidationError("add a question or scenario first")
	ErrRealAIRequired    = NewValidationError("NGN case generation requires real AI to be on")
	ErrNotesInsufficient = NewValidationError("notes-only mode is on, but no notes were provided; upload or paste notes, or turn notes-only off")
)
