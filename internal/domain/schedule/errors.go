package schedule

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the scheduling core unwraps to one of these.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrConfiguration = errors.New("invalid configuration")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an error of kind ErrNotFound.
func NotFound(format string, args ...any) error {
	return newKindError(ErrNotFound, format, args...)
}

// Validation builds an error of kind ErrValidation.
func Validation(format string, args ...any) error {
	return newKindError(ErrValidation, format, args...)
}

// Conflict builds an error of kind ErrConflict.
func Conflict(format string, args ...any) error {
	return newKindError(ErrConflict, format, args...)
}

// Configuration builds an error of kind ErrConfiguration.
func Configuration(format string, args ...any) error {
	return newKindError(ErrConfiguration, format, args...)
}
