package datasource

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure kinds callers branch on with errors.Is
var (
	// ErrCityNotFound means the API does not know the requested city
	ErrCityNotFound = errors.New("city not found")

	// ErrUnauthorized means the API key was missing or rejected
	ErrUnauthorized = errors.New("api key rejected")
)

// RequestError covers transport failures and unexpected API responses
type RequestError struct {
	Op         string // "current" or "forecast"
	StatusCode int    // zero when the request never completed
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// classifyStatus converts a non-200 API status into a typed error.
// The message comes from the API's error payload when present.
func classifyStatus(op string, status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %s: %w", op, message, ErrCityNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %s: %w", op, message, ErrUnauthorized)
	}

	return &RequestError{Op: op, StatusCode: status, Err: errors.New(message)}
}
