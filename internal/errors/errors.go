package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSourceEmpty   ErrorType = "SOURCE_EMPTY"
	ErrTypeSourceLoad    ErrorType = "SOURCE_LOAD"
	ErrTypeNoDateColumn  ErrorType = "NO_DATE_COLUMN"
	ErrTypeInvalidRange  ErrorType = "INVALID_RANGE"
	ErrTypeInvalidConfig ErrorType = "INVALID_CONFIG"
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
	ErrTypeConfig        ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for the pipeline error taxonomy

// NewSourceEmptyError reports an input dataset with zero rows; fatal.
func NewSourceEmptyError(source string) *AppError {
	return NewAppError(ErrTypeSourceEmpty, fmt.Sprintf("source %s has no data rows", source), nil)
}

// NewSourceLoadError reports an input that cannot be read or parsed; fatal.
func NewSourceLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSourceLoad, message, cause)
}

// NewNoDateColumnError reports that calendar inference found no date-like
// column; fatal for the inferring call only.
func NewNoDateColumnError() *AppError {
	return NewAppError(ErrTypeNoDateColumn, "no date column found in fact data", nil)
}

// NewInvalidRangeError reports a calendar range whose end precedes start.
func NewInvalidRangeError(message string) *AppError {
	return NewAppError(ErrTypeInvalidRange, message, nil)
}

// NewInvalidConfigError reports an out-of-bounds configuration value.
func NewInvalidConfigError(message string) *AppError {
	return NewAppError(ErrTypeInvalidConfig, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
