package service

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrRemoteService = errors.New("remote service error")
	ErrAssetCreation = fmt.Errorf("video asset creation failed: %w", ErrRemoteService)
	// ErrNonRetryable marks queue messages that must go to the dead letter
	// queue instead of being retried.
	ErrNonRetryable = errors.New("non-retryable error")
)

// ValidationError is a client error on a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// notFound turns a missing row into ErrNotFound and passes other errors through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
