package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by services, repositories and handlers.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Absence of a creator profile drives the setup flow, absence of a template
// is a hard error. Both wrap ErrNotFound.
var (
	ErrCreatorProfileNotFound = fmt.Errorf("creator profile: %w", ErrNotFound)
	ErrTemplateNotFound       = fmt.Errorf("trip template: %w", ErrNotFound)
	ErrAffiliateLinkNotFound  = fmt.Errorf("affiliate link: %w", ErrNotFound)
	ErrUserNotFound           = fmt.Errorf("user: %w", ErrNotFound)
)

// FieldError describes a validation problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors; it unwraps to ErrValidation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// ConflictError names the unique constraint (or rule) that was violated.
type ConflictError struct {
	Constraint string
	Message    string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError creates a ConflictError.
func NewConflictError(constraint, message string) *ConflictError {
	return &ConflictError{Constraint: constraint, Message: message}
}
