package hooks

import (
	"context"
	"sync"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/contextx"
	"github.com/Keksclan/goRawrLambda/httperr"
	"github.com/Keksclan/goRawrLambda/policy"
	"github.com/Keksclan/goRawrLambda/ratelimit"
)

// errRateLimited is allocated once to avoid per-request allocations on the hot path.
var errRateLimited = httperr.TooManyRequests("rate limit exceeded")

// rateLimitState holds the global limiter, an optional policy resolver, and a
// cache of per-group limiters created lazily from resolved policies.
type rateLimitState struct {
	global   *ratelimit.Limiter
	resolver *policy.Resolver

	mu     sync.Mutex
	groups map[string]*ratelimit.Limiter
}

// limiterFor returns the group's limiter when the route resolves to a group
// with a RateLimit policy, otherwise the global limiter (which may be nil).
func (s *rateLimitState) limiterFor(req *composer.Request, inv *composer.Invocation) *ratelimit.Limiter {
	name, pol, ok := s.resolver.ResolveRequest(req)
	if ok {
		contextx.WithGroup(inv, name)
		if pol != nil && pol.RateLimit != nil {
			return s.groupLimiter(name, pol.RateLimit)
		}
	}
	return s.global
}

func (s *rateLimitState) groupLimiter(name string, rl *policy.RateLimitRule) *ratelimit.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.groups[name]; ok {
		return l
	}
	l := ratelimit.NewLimiter(float64(rl.Rate)/rl.Window.Seconds(), rl.Rate)
	s.groups[name] = l
	return l
}

// RateLimit returns a before hook that rejects requests with 429 when the
// applicable limiter is exhausted. When r resolves the route to a group with
// a RateLimit rule, that group's limiter is used; otherwise l applies. Both
// l and r may be nil.
func RateLimit(l *ratelimit.Limiter, r *policy.Resolver) composer.Hook {
	st := &rateLimitState{global: l, resolver: r, groups: make(map[string]*ratelimit.Limiter)}
	return func(_ context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if lim := st.limiterFor(req, inv); lim != nil && !lim.Allow() {
			return nil, errRateLimited
		}
		return nil, nil
	}
}
