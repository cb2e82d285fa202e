package contextx

import "github.com/Keksclan/goRawrLambda/composer"

// Actor represents the authenticated identity behind a request. It is
// typically populated by the authentication hook and stored on the invocation
// via [WithActor]. Handlers retrieve it with [ActorFrom].
//
// Example:
//
//	contextx.WithActor(inv, contextx.Actor{Subject: "user-42", Tenant: "acme"})
//	actor, ok := contextx.ActorFrom(inv)
type Actor struct {
	Subject  string
	Tenant   string
	ClientID string
	Scopes   []string
}

// HasScope reports whether the actor was granted scope.
func (a Actor) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// WithActor stores a on inv.
func WithActor(inv *composer.Invocation, a Actor) {
	inv.Set(actorKey, a)
}

// ActorFrom extracts the Actor stored on inv.
// The boolean return value indicates whether an Actor was present.
func ActorFrom(inv *composer.Invocation) (Actor, bool) {
	a, ok := inv.Value(actorKey).(Actor)
	return a, ok
}
