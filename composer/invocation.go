package composer

import (
	"time"
)

// Invocation is the per-invocation state shared by every hook and the
// terminal handler of a single request lifecycle. A fresh Invocation must be
// used for each request; it is not safe for concurrent use.
type Invocation struct {
	// RequestID identifies the invocation in logs and response headers.
	RequestID string

	// StartedAt is when the invocation was created.
	StartedAt time.Time

	err    error
	failed bool
	values map[any]any
}

// NewInvocation returns an empty Invocation carrying requestID.
func NewInvocation(requestID string) *Invocation {
	return &Invocation{
		RequestID: requestID,
		StartedAt: time.Now(),
	}
}

// Err returns the failure that moved the current layer onto the error path,
// or nil while no failure has happened. When wrapped handlers are nested, a
// layer that recovers from its failure leaves the slot as it found it.
func (inv *Invocation) Err() error {
	return inv.err
}

// Failed reports whether a failure has been recorded.
func (inv *Invocation) Failed() bool {
	return inv.failed
}

// recordErr stores err as the invocation's failure. Only the first call has an
// effect; it reports whether err was stored.
func (inv *Invocation) recordErr(err error) bool {
	if inv.failed {
		return false
	}
	inv.err = err
	inv.failed = true
	return true
}

// Set stores an extension value under key. Keys should be unexported types
// owned by the package that defines the value, as with context keys.
func (inv *Invocation) Set(key, val any) {
	if inv.values == nil {
		inv.values = make(map[any]any)
	}
	inv.values[key] = val
}

// Value returns the extension value stored under key, or nil.
func (inv *Invocation) Value(key any) any {
	return inv.values[key]
}

// Delete removes the extension value stored under key.
func (inv *Invocation) Delete(key any) {
	delete(inv.values, key)
}
