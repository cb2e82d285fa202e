// Package httperr defines the errors recognized by the error-handling hook.
//
// An *Error is a closed tagged variant: Kind selects which payload fields are
// meaningful. Everything that is not an *Error (after unwrapping) is treated as
// an unrecognized failure and answered with a generic response.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates the variants of Error.
type Kind int

const (
	// KindHTTP is a domain error raised by application code: Status, Code and
	// optional Meta describe the response.
	KindHTTP Kind = iota
	// KindValidation reports malformed input: Issues lists what is wrong and
	// the response is always 400 BAD_REQUEST.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Issue is one validation problem.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is a recognized request failure.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Meta    any
	Issues  []Issue
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Code, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the wrapped cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithMeta returns a copy of e carrying meta.
func (e *Error) WithMeta(meta any) *Error {
	cp := *e
	cp.Meta = meta
	return &cp
}

// Wrap returns a copy of e that wraps cause.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// New creates a KindHTTP error.
func New(status int, code, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: KindHTTP, Status: status, Code: code, Message: message}
}

// Validation creates a KindValidation error listing issues.
func Validation(issues ...Issue) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: "Bad request, please correct and resend again.",
		Issues:  issues,
	}
}

// BadRequest returns a 400 error. An empty code defaults to BAD_REQUEST.
func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, orDefault(code, "BAD_REQUEST"), message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict returns a 409 error.
func Conflict(message string) *Error {
	return New(http.StatusConflict, "CONFLICT", message)
}

// TooManyRequests returns a 429 error.
func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message)
}

// ServiceUnavailable returns a 503 error.
func ServiceUnavailable(message string) *Error {
	return New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
