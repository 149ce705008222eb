package models

import (
	"errors"
	"fmt"
)

// Error codes used in API responses and internal error handling.
const (
	ErrCodeRenderLimit     = "RENDER_LIMIT_REACHED"
	ErrCodeNavigation      = "NAVIGATION_FAILED"
	ErrCodeTimeout         = "RENDER_TIMEOUT"
	ErrCodeSelectorTimeout = "SELECTOR_TIMEOUT"
	ErrCodeBrowserCrash    = "BROWSER_CRASH"
	ErrCodeBrowserClosed   = "BROWSER_CLOSED"
	ErrCodeFetchFailed     = "FETCH_FAILED"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CrawlError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type CrawlError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CrawlError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Err
}

// NewCrawlError creates a new CrawlError.
func NewCrawlError(code, message string, err error) *CrawlError {
	return &CrawlError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *CrawlError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// HasCode reports whether err (or anything it wraps) is a CrawlError with
// the given code.
func HasCode(err error, code string) bool {
	var ce *CrawlError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// AsCrawlError returns err as a *CrawlError, wrapping unknown errors with
// ErrCodeInternal.
func AsCrawlError(err error) *CrawlError {
	var ce *CrawlError
	if errors.As(err, &ce) {
		return ce
	}
	return NewCrawlError(ErrCodeInternal, err.Error(), err)
}
