package api

import (
	"errors"
	"fmt"
)

// NetworkError indicates the request never produced an HTTP response:
// connection failure, DNS error, or the per-call timeout expiring.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RejectedError indicates the backend answered with a non-2xx status, or
// with a 2xx body that could not be decoded.
type RejectedError struct {
	Op         string
	StatusCode int
	Message    string // server-provided "error" field, if any
	Err        error  // decode failure for 2xx bodies
}

func (e *RejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unusable response (HTTP %d): %v", e.Op, e.StatusCode, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: rejected (HTTP %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: rejected (HTTP %d)", e.Op, e.StatusCode)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// IsNetwork reports whether err is, or wraps, a *NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsRejected reports whether err is, or wraps, a *RejectedError.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}
