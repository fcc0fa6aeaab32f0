package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrTaskNotFound is returned when a task is not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSettingNotFound is returned when a setting key has no value.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large (max 10MB)")
	// ErrStoreUnavailable is returned when a backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrSettingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SETTING_NOT_FOUND")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FILE_TOO_LARGE")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
