package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"slices"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Codes returns a classifier that retries errors carrying one of the given
// gRPC status codes.
func Codes(retryable ...codes.Code) func(error) bool {
	return func(err error) bool {
		st, ok := status.FromError(err)
		return ok && slices.Contains(retryable, st.Code())
	}
}

// Transient reports whether err looks like a temporary network failure.
// Context cancellation is never transient.
func Transient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Any combines classifiers; an error is retried when any of them accepts it.
func Any(fns ...func(error) bool) func(error) bool {
	return func(err error) bool {
		for _, f := range fns {
			if f != nil && f(err) {
				return true
			}
		}
		return false
	}
}
