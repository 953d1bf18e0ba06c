// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoURLProvided is returned when a feed is requested without a URL
var ErrNoURLProvided = errors.New("No URL Provided")

// defaultExtractionMessage is used when upstream gives no usable message
const defaultExtractionMessage = "Page Error"

// ExtractionError represents any failure to get list data for a page:
// an upstream error report, an empty result or a transport failure.
type ExtractionError struct {
	URL     string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Message == "" {
		return defaultExtractionMessage
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// LockTimeoutError is returned when a feed lock could not be acquired in time
type LockTimeoutError struct {
	Key    string
	Waited time.Duration

	// Err is the last backend error seen while waiting, if any
	Err error
}

// Error implements the error interface
func (e *LockTimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for lock %s", e.Waited, e.Key)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the last backend error, if any
func (e *LockTimeoutError) Unwrap() error {
	return e.Err
}

// IsNoURLProvided checks if an error is ErrNoURLProvided
func IsNoURLProvided(err error) bool {
	return errors.Is(err, ErrNoURLProvided)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsLockTimeout checks if an error is a LockTimeoutError
func IsLockTimeout(err error) bool {
	var lockErr *LockTimeoutError
	return errors.As(err, &lockErr)
}
