package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is an error that knows the HTTP status and error code it maps to.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError builds an HTTPError whose error code mirrors the status code.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{StatusCode: status, Code: status, Message: message}
}

// NewHTTPErrorf is NewHTTPError with a format string.
func NewHTTPErrorf(status int, format string, args ...any) *HTTPError {
	return NewHTTPError(status, fmt.Sprintf(format, args...))
}

// Common HTTP errors.
var (
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "service temporarily unavailable, please retry")
	ErrTooManyRequests     = NewHTTPError(http.StatusTooManyRequests, "too many requests")
)

// AsHTTPError reports whether err (or anything it wraps) is an HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
