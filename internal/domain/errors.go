package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	ErrCategoryInUse     = errors.New("category in use")
	ErrUnsupportedFilter = errors.New("unsupported filter")
	ErrAmbiguousFilter   = errors.New("ambiguous filter")
	// ErrStoreUnavailable marks transient store failures (timeouts, lost
	// connections). Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Entity-specific not-found errors. Both match ErrNotFound via errors.Is.
var (
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrListingNotFound  = fmt.Errorf("listing %w", ErrNotFound)
)

// ViolationCode classifies a single validation failure.
type ViolationCode string

const (
	ViolationMissingRequired ViolationCode = "missing_required_field"
	ViolationUnknownField    ViolationCode = "unknown_field"
	ViolationInvalidValue    ViolationCode = "invalid_field_value"
)

func (c ViolationCode) String() string { return string(c) }

// FieldError describes a validation error for a specific field.
// Code is set for attribute-map violations and empty for plain input errors.
type FieldError struct {
	Field   string
	Message string
	Code    ViolationCode
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// FilterError reports a filter key the query translator refused.
// It unwraps to ErrUnsupportedFilter or ErrAmbiguousFilter.
type FilterError struct {
	Key    string
	Reason string
	kind   error
}

// NewUnsupportedFilter builds a FilterError matching ErrUnsupportedFilter.
func NewUnsupportedFilter(key, reason string) *FilterError {
	return &FilterError{Key: key, Reason: reason, kind: ErrUnsupportedFilter}
}

// NewAmbiguousFilter builds a FilterError matching ErrAmbiguousFilter.
func NewAmbiguousFilter(key, reason string) *FilterError {
	return &FilterError{Key: key, Reason: reason, kind: ErrAmbiguousFilter}
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.kind, e.Key, e.Reason)
}

func (e *FilterError) Unwrap() error { return e.kind }
