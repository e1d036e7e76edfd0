package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAgentNotFound   = errors.New("agent not found")
	ErrSessionNotFound = errors.New("booking session not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrWrongStage        = errors.New("action is not available at the current stage")
	ErrCannotGoBack      = errors.New("cannot go back from the current stage")
	ErrInvalidTransition = errors.New("booking status transition is not allowed")
	ErrPaymentInProgress = errors.New("a payment for this booking flow is already in progress")
)

// ValidationError reports a missing or malformed field. It is handled by the
// stage that detected it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// TransientServiceError wraps a collaborator failure that may succeed on retry.
type TransientServiceError struct {
	Op  string
	Err error
}

func (e *TransientServiceError) Error() string {
	return fmt.Sprintf("%s: temporarily unavailable: %v", e.Op, e.Err)
}

func (e *TransientServiceError) Unwrap() error { return e.Err }

func NewTransientError(op string, err error) error {
	return &TransientServiceError{Op: op, Err: err}
}

// FatalServiceError is a definitive refusal from a collaborator, e.g. a
// declined payment.
type FatalServiceError struct {
	Op     string
	Reason string
}

func (e *FatalServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func NewFatalError(op, reason string) error {
	return &FatalServiceError{Op: op, Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsTransient(err error) bool {
	var t *TransientServiceError
	return errors.As(err, &t)
}

func IsFatal(err error) bool {
	var f *FatalServiceError
	return errors.As(err, &f)
}
