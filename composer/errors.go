package composer

import (
	"errors"
	"fmt"
)

// ErrNilResponse is returned by host adapters when an invocation succeeds
// without producing a response.
var ErrNilResponse = errors.New("composer: handler returned nil response")

// PanicError is the failure recorded when a hook or the handler panics and
// recovery is enabled.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
