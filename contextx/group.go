package contextx

import "github.com/Keksclan/goRawrLambda/composer"

// WithGroup records the policy group the request's route resolved to.
func WithGroup(inv *composer.Invocation, group string) {
	inv.Set(groupKey, group)
}

// GroupFrom returns the recorded policy group, or an empty string when the
// route did not match any group.
func GroupFrom(inv *composer.Invocation) string {
	g, _ := inv.Value(groupKey).(string)
	return g
}
