package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrNetwork is returned when the request never reached the backend
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned on a 401 response
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned on a 404 response
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidRequest is returned on a 400 response
	ErrInvalidRequest = errors.New("invalid request")

	// ErrServer is returned on any other non-2xx response
	ErrServer = errors.New("server error")
)

// genericFailureMessage is surfaced when the backend response carries no
// usable message of its own.
const genericFailureMessage = "request failed, please try again"

// ErrorResponse is the backend's error envelope.
type ErrorResponse struct {
	Message string                 `json:"message"`
	Errors  map[string]interface{} `json:"errors,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// StatusError carries the HTTP status and the human-readable message
// extracted from the backend's error envelope. It always wraps one of
// the sentinel errors above so callers can branch with errors.Is.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// Message extracts the display message for any error returned by the
// client, falling back to a generic string.
func Message(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	if errors.Is(err, ErrNetwork) {
		return "could not reach the store, check your connection"
	}
	if err != nil {
		return genericFailureMessage
	}
	return ""
}
