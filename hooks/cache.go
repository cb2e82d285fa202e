package hooks

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Keksclan/goRawrLambda/cache"
	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/contextx"
	"github.com/Keksclan/goRawrLambda/policy"
)

// CacheHeaderName reports whether a response came from the cache.
const CacheHeaderName = "X-Cache"

func cacheable(req *composer.Request) bool {
	return strings.EqualFold(req.HTTPMethod, http.MethodGet)
}

// cacheKey keeps authenticated responses apart per tenant and subject.
func cacheKey(req *composer.Request, inv *composer.Invocation) string {
	a, ok := contextx.ActorFrom(inv)
	if !ok {
		return cache.Key(req)
	}
	return cache.ScopedKey(req, url.PathEscape(a.Tenant)+"/"+url.PathEscape(a.Subject))
}

// CacheLookup returns a before hook that answers GET requests from store.
// Hits short-circuit the invocation with X-Cache: HIT. Store errors count as
// misses. Requests carrying an actor are looked up under that actor's key.
func CacheLookup(store cache.Store) composer.Hook {
	return func(ctx context.Context, req *composer.Request, inv *composer.Invocation, _ *composer.Response) (*composer.Response, error) {
		if !cacheable(req) {
			return nil, nil
		}
		resp, ok, err := store.Get(ctx, cacheKey(req, inv))
		if err != nil || !ok {
			return nil, nil
		}
		return withHeader(resp, CacheHeaderName, "HIT"), nil
	}
}

// CacheStore returns an after hook that stores successful GET responses.
// The TTL comes from the route group's CacheTTL when r resolves one,
// otherwise ttl is used. A non-positive TTL disables storing. Stored
// responses are returned with X-Cache: MISS.
func CacheStore(store cache.Store, ttl time.Duration, r *policy.Resolver) composer.Hook {
	return func(ctx context.Context, req *composer.Request, inv *composer.Invocation, resp *composer.Response) (*composer.Response, error) {
		if resp == nil || resp.StatusCode != http.StatusOK || !cacheable(req) {
			return nil, nil
		}

		d := ttl
		if _, pol, ok := r.ResolveRequest(req); ok && pol != nil && pol.CacheTTL > 0 {
			d = pol.CacheTTL
		}
		if d <= 0 {
			return nil, nil
		}

		if err := store.Set(ctx, cacheKey(req, inv), resp, d); err != nil {
			return nil, nil
		}
		return withHeader(resp, CacheHeaderName, "MISS"), nil
	}
}
