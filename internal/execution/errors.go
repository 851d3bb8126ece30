package execution

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrCancelled is returned when the caller's context is cancelled while the
// submission is in flight.
var ErrCancelled = errors.New("execution cancelled")

// ValidationError is returned before any network call when the request is
// not fit to be sent.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid execution request: " + strings.Join(e.Errors, "; ")
}

// NetworkError is a transport level failure: the connection could not be
// made, the name did not resolve, or the timeout was exceeded. No partial
// result exists when it is returned.
type NetworkError struct {
	Platform Platform
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request to %s failed: %v", e.Platform, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was caused by the deadline of the call.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var timeout interface{ Timeout() bool }
	return errors.As(e.Err, &timeout) && timeout.Timeout()
}

// DecodeError is returned when the response body is not valid JSON. The raw
// body is attached for diagnostics.
type DecodeError struct {
	Platform   Platform
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response (HTTP %d): %v", e.Platform, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UpstreamError is a well-formed response in which the platform reports that
// it could not execute the request. The message is passed through as is.
type UpstreamError struct {
	Platform   Platform
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s rejected the execution (HTTP %d): %s", e.Platform, e.StatusCode, e.Message)
}
