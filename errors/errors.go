// Package errors provides standardized error handling for buildingdata
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping across the module.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorFatal represents unrecoverable initialization errors: the dataset
	// must not come up in a partially-loaded state
	ErrorFatal ErrorClass = iota
	// ErrorNotFound represents expected, recoverable lookup misses
	ErrorNotFound
	// ErrorInvalid represents errors due to invalid caller input
	ErrorInvalid
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorFatal:
		return "fatal"
	case ErrorNotFound:
		return "not_found"
	case ErrorInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Load-phase errors: any of these aborts dataset construction
	ErrArchiveNotFound = errors.New("archive file not found")
	ErrArchiveCorrupt  = errors.New("archive unreadable or corrupt")
	ErrMapperNotFound  = errors.New("mapping file not found")
	ErrMapperMalformed = errors.New("mapping table malformed")
	ErrGraphNotFound   = errors.New("graph file not found")
	ErrGraphUnparsable = errors.New("graph document unparsable")

	// Lookup errors: expected, handled locally by callers
	ErrStreamNotFound = errors.New("stream not found")

	// Query errors: surfaced synchronously from Query calls
	ErrBadQuery     = errors.New("malformed query")
	ErrUnknownGraph = errors.New("unknown graph selector")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsNotFound checks if an error is an expected lookup miss
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorNotFound
	}

	return errors.Is(err, ErrStreamNotFound)
}

// IsFatal checks if an error is a fatal initialization error
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrArchiveNotFound) ||
		errors.Is(err, ErrArchiveCorrupt) ||
		errors.Is(err, ErrMapperNotFound) ||
		errors.Is(err, ErrMapperMalformed) ||
		errors.Is(err, ErrGraphNotFound) ||
		errors.Is(err, ErrGraphUnparsable)
}

// IsInvalid checks if an error is due to invalid caller input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrBadQuery) || errors.Is(err, ErrUnknownGraph)
}

// Classify returns the error class for an error. Unrecognized errors classify
// as fatal: during the load phase that is the only safe default.
func Classify(err error) ErrorClass {
	if IsNotFound(err) {
		return ErrorNotFound
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}
	return ErrorFatal
}

// newClassified creates a new classified error
// This is an internal helper - use WrapFatal(), WrapNotFound(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapFatal wraps an error as a fatal initialization error with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorFatal, Wrap(err, component, method, action), component, method)
}

// WrapNotFound wraps an error as an expected lookup miss with context
func WrapNotFound(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorNotFound, Wrap(err, component, method, action), component, method)
}

// WrapInvalid wraps an error as invalid caller input with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorInvalid, Wrap(err, component, method, action), component, method)
}
