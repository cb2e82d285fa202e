package hooks

// invocation extension keys owned by this package
type (
	breakerKey         struct{}
	breakerRejectedKey struct{}
)
