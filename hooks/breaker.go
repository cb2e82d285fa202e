package hooks

import (
	"context"
	"net/http"

	"github.com/Keksclan/goRawrLambda/breaker"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/Keksclan/goRawrLambda/policy"
)

// defaultBreakerKey is used for routes outside every policy group.
const defaultBreakerKey = "default"

var errCircuitOpen = httperr.ServiceUnavailable("service temporarily unavailable").Wrap(breaker.ErrOpen)

// BreakerGate returns a before hook that rejects requests with 503 while the
// breaker of the request's route group is open. Each policy group gets its
// own breaker; unmatched routes share one.
func BreakerGate(set *breaker.Set, r *policy.Resolver) composer.Hook {
	return func(_ context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		key := defaultBreakerKey
		if name, _, ok := r.ResolveRequest(req); ok {
			key = name
		}
		if !set.Get(key).Allow() {
			inv.Set(breakerRejectedKey{}, true)
			return nil, errCircuitOpen
		}
		inv.Set(breakerKey{}, key)
		return nil, nil
	}
}

// BreakerRecord returns a finally hook that reports the outcome to the
// breaker chosen by BreakerGate. A 5xx response, or no response after a
// failure, counts as a failure. Requests that never passed the gate, or that
// the gate itself rejected, are not recorded.
func BreakerRecord(set *breaker.Set) composer.Hook {
	return func(_ context.Context, _ *composer.Request, inv *composer.Invocation, resp *composer.Response) (*composer.Response, error) {
		if rejected, _ := inv.Value(breakerRejectedKey{}).(bool); rejected {
			return nil, nil
		}
		key, ok := inv.Value(breakerKey{}).(string)
		if !ok {
			return nil, nil
		}

		failed := inv.Failed()
		if resp != nil {
			failed = resp.StatusCode >= http.StatusInternalServerError
		}
		if failed {
			set.Get(key).OnFailure()
		} else {
			set.Get(key).OnSuccess()
		}
		return nil, nil
	}
}
