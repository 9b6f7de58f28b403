package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the API could not be reached or returned an
	// unreadable body.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrRejected means the API answered but refused the operation.
	ErrRejected = errors.New("backend rejected request")
)

// RejectionError carries the human-readable refusal reason the API reported.
// It matches ErrRejected under errors.Is.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("backend rejected request: %s", e.Message)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }
