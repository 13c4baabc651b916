package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// statusForType maps pipeline error types to HTTP status codes.
func statusForType(t ErrorType) int {
	switch t {
	case ErrTypeNotFound:
		return http.StatusNotFound
	case ErrTypeValidation, ErrTypeInvalidRange, ErrTypeInvalidConfig:
		return http.StatusBadRequest
	case ErrTypeSourceEmpty, ErrTypeNoDateColumn:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ToAPIError converts any error into an APIError envelope. AppError types
// keep their code and map to an appropriate status; everything else becomes
// an internal server error.
func ToAPIError(err error) *APIError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return New(statusForType(appErr.Type), string(appErr.Type), appErr.Message)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
}

// WriteError writes an error to the response as a JSON envelope.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := ToAPIError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	json.NewEncoder(w).Encode(apiErr)
}
