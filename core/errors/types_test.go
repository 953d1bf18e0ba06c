package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExtractionError_Error(t *testing.T) {
	err := &ExtractionError{
		URL:     "https://example.com",
		Message: "No content found on page",
	}

	expected := "No content found on page"
	if err.Error() != expected {
		t.Errorf("ExtractionError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestExtractionError_DefaultMessage(t *testing.T) {
	err := &ExtractionError{URL: "https://example.com"}

	if err.Error() != "Page Error" {
		t.Errorf("ExtractionError.Error() = %v, want generic message", err.Error())
	}
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ExtractionError{Message: "connection refused", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("ExtractionError should unwrap to its cause")
	}
}

func TestLockTimeoutError_Error(t *testing.T) {
	err := &LockTimeoutError{
		Key:    "lock:feed:https://example.com",
		Waited: 2 * time.Second,
	}

	expected := "timed out after 2s waiting for lock lock:feed:https://example.com"
	if err.Error() != expected {
		t.Errorf("LockTimeoutError.Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsNoURLProvided(t *testing.T) {
	if !IsNoURLProvided(ErrNoURLProvided) {
		t.Error("IsNoURLProvided should return true for ErrNoURLProvided")
	}

	if !IsNoURLProvided(fmt.Errorf("handler: %w", ErrNoURLProvided)) {
		t.Error("IsNoURLProvided should return true for wrapped ErrNoURLProvided")
	}

	if IsNoURLProvided(errors.New("No URL Provided")) {
		t.Error("IsNoURLProvided should not match by message")
	}
}

func TestIsExtraction_True(t *testing.T) {
	err := &ExtractionError{Message: "boom"}

	if !IsExtraction(err) {
		t.Error("IsExtraction should return true for ExtractionError")
	}
}

func TestIsExtraction_False(t *testing.T) {
	err := errors.New("some other error")

	if IsExtraction(err) {
		t.Error("IsExtraction should return false for non-ExtractionError")
	}
}

func TestIsExtraction_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetch: %w", &ExtractionError{Message: "boom"})

	if !IsExtraction(err) {
		t.Error("IsExtraction should return true for wrapped ExtractionError")
	}
}

func TestIsLockTimeout(t *testing.T) {
	if !IsLockTimeout(&LockTimeoutError{Key: "k"}) {
		t.Error("IsLockTimeout should return true for LockTimeoutError")
	}

	if IsLockTimeout(&ExtractionError{}) {
		t.Error("IsLockTimeout should return false for ExtractionError")
	}
}

func TestLockTimeoutError_Cause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &LockTimeoutError{Key: "lock:feed:x", Waited: time.Second, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("LockTimeoutError should unwrap to its cause")
	}
	if got := err.Error(); got != "timed out after 1s waiting for lock lock:feed:x: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !IsLockTimeout(fmt.Errorf("get feed: %w", err)) {
		t.Error("IsLockTimeout should see through wrapping")
	}
}
