// Package contextx stores request-scoped identity data on a
// [composer.Invocation] so hooks and handlers can share it.
package contextx

// invocationKey is an unexported type used as invocation key to avoid
// collisions with keys defined in other packages.
type invocationKey int

const (
	actorKey invocationKey = iota
	groupKey
)
