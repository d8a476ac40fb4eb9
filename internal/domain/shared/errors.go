// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound        = errors.New("record not found")
	ErrIndexOutOfRange = errors.New("index out of range")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")

	// Persistence errors
	ErrCorruptData = errors.New("persisted data is corrupt")
	ErrIO          = errors.New("i/o failure")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "record", "persistence"
	Op      string // Operation that failed, e.g., "Add", "Save"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Record domain errors
var (
	ErrRecordNotFound = NewDomainError("record", "Find", ErrNotFound, "student record not found")
	ErrInvalidIndex   = NewDomainError("record", "Index", ErrIndexOutOfRange, "no record at the given position")
)

// Persistence errors
var (
	ErrDataFileCorrupt = NewDomainError("persistence", "Load", ErrCorruptData, "data file contains malformed JSON")
	ErrBackupMissing   = NewDomainError("persistence", "Restore", ErrIO, "backup file does not exist")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrIndexOutOfRange)
}

// IsCorruptData checks if the error indicates an unparseable data file.
func IsCorruptData(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// IsIO checks if the error is a filesystem failure.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}
