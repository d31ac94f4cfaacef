package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Complete error code constants, grouped by the pipeline stage that
// produces them. All packages MUST use these constants instead of
// hardcoded strings.
const (
	// Forecast data (fatal for the cycle)
	ErrCodeDataTooShort       ErrorCode = "data_forecast_too_short"
	ErrCodeDataNonMonotonic   ErrorCode = "data_dates_non_monotonic"
	ErrCodeDataNegativePrecip ErrorCode = "data_negative_precipitation"
	ErrCodeDataMalformed      ErrorCode = "data_response_malformed"

	// Forecast fetch (fatal for the cycle)
	ErrCodeFetchUnavailable ErrorCode = "fetch_upstream_unavailable"
	ErrCodeFetchTimeout     ErrorCode = "fetch_upstream_timeout"
	ErrCodeFetchRateLimited ErrorCode = "fetch_upstream_rate_limited"
	ErrCodeFetchBadStatus   ErrorCode = "fetch_upstream_bad_status"

	// Notification delivery (recovered per candidate)
	ErrCodeSendFailed      ErrorCode = "send_webhook_failed"
	ErrCodeSendBadStatus   ErrorCode = "send_webhook_bad_status"
	ErrCodeSendUnavailable ErrorCode = "send_webhook_unavailable"

	// Dedup state store
	ErrCodeStoreCorrupt     ErrorCode = "store_state_corrupt"
	ErrCodeStoreReadFailed  ErrorCode = "store_read_failed"
	ErrCodeStoreWriteFailed ErrorCode = "store_write_failed"

	// Catch-all
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// ExitCode maps an ErrorCode to the process exit status for the run.
// Send and store-read failures are recovered in-cycle and never become
// the run's exit status on their own; the mapping is still total so any
// code surfaced as fatal produces a meaningful status.
func (c ErrorCode) ExitCode() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "data_"):
		return 1
	case strings.HasPrefix(s, "fetch_"):
		return 1
	case c == ErrCodeStoreWriteFailed:
		return 1
	case strings.HasPrefix(s, "send_"):
		return 2
	case strings.HasPrefix(s, "store_"):
		return 2
	default:
		return 1
	}
}

// Fatal reports whether an error with this code aborts the current cycle.
// Per-candidate send failures are recovered locally, as is an unreadable
// state file on load (the store starts empty instead).
func (c ErrorCode) Fatal() bool {
	switch {
	case strings.HasPrefix(string(c), "send_"):
		return false
	case c == ErrCodeStoreCorrupt, c == ErrCodeStoreReadFailed:
		return false
	default:
		return true
	}
}

// AppError is the standard application error type used throughout the
// agent. All domain errors should be expressed as AppError to enable
// consistent error formatting, exit-code mapping, and error chain support.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status corresponding to this error's code.
func (e *AppError) ExitCode() int {
	return e.Code.ExitCode()
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error. This is the standard constructor for domain
// errors.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the ErrorCode from an error chain. Errors that are not
// AppErrors report ErrCodeInternalUnexpected.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalUnexpected
}

// ExitCodeOf extracts the process exit status from an error chain.
// A nil error is a successful run.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	return CodeOf(err).ExitCode()
}
