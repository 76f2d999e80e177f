package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput signals that the URL was blank after trimming.
	ErrEmptyInput = errors.New("url is empty")
	// ErrInvalidURL signals that the URL did not parse as an absolute http(s) URL.
	ErrInvalidURL = errors.New("url must be an absolute http or https url")
	// ErrBusy signals that a conversion is already in flight on the same handler.
	ErrBusy = errors.New("a conversion is already in progress")
	// ErrSaveFailed signals that the PDF arrived but could not be stored.
	ErrSaveFailed = errors.New("could not save")
)

// BackendError is returned when the conversion backend answers with a
// non-success status. Message comes from the JSON "error" field or, failing
// that, from the HTTP status text.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure: the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewBackendError builds a BackendError, falling back to a generic message
// when neither a body message nor a status text is available.
func NewBackendError(status int, message string) *BackendError {
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", status)
	}
	return &BackendError{Status: status, Message: message}
}
