package gorawrlambda

import "github.com/Keksclan/goRawrLambda/hooks"

// DefaultOptions returns the recommended set of options for an HTTP API:
// panic recovery, request ids, JSON bodies, JSON error responses and open
// CORS.
func DefaultOptions() []Option {
	return []Option{
		WithRecovery(),
		WithRequestID(),
		WithJSONBody(),
		WithErrorHandler(),
		WithCORS(hooks.DefaultCORSConfig),
	}
}
