// Package cache stores API Gateway responses for reuse by later invocations.
// It ships an in-process store backed by ristretto, a Redis store, and a
// tiered combination of the two.
package cache

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"golang.org/x/sync/singleflight"
)

// Store is the response cache contract used by the cache hooks.
type Store interface {
	// Get retrieves a response by key. The boolean indicates a hit. The
	// returned response may be modified by the caller.
	Get(ctx context.Context, key string) (*composer.Response, bool, error)

	// Set stores resp under key with the given TTL. A zero TTL means the
	// entry has no automatic expiration.
	Set(ctx context.Context, key string, resp *composer.Response, ttl time.Duration) error
}

// Key derives the cache key of req from its method, path and sorted query
// parameters.
func Key(req *composer.Request) string {
	var b strings.Builder
	b.WriteString("resp:")
	b.WriteString(strings.ToUpper(req.HTTPMethod))
	b.WriteByte(' ')
	b.WriteString(req.Path)

	q := url.Values{}
	for k, v := range req.QueryStringParameters {
		q.Set(k, v)
	}
	for k, vs := range req.MultiValueQueryStringParameters {
		q[k] = vs
	}
	if len(q) > 0 {
		for k, vs := range q {
			q[k] = slices.Sorted(slices.Values(vs))
		}
		b.WriteByte('?')
		b.WriteString(q.Encode())
	}
	return b.String()
}

// ScopedKey is Key narrowed to scope, typically the caller identity. An empty
// scope yields Key(req).
func ScopedKey(req *composer.Request, scope string) string {
	k := Key(req)
	if scope == "" {
		return k
	}
	return k + "#" + url.PathEscape(scope)
}

// group runs at most one read per key at a time. Callers that share a read
// each receive their own copy of the response; a nil response is a miss.
type group struct {
	sf singleflight.Group
}

func (g *group) do(ctx context.Context, key string, fn func(context.Context) (*composer.Response, error)) (*composer.Response, error) {
	v, err, _ := g.sf.Do(key, func() (any, error) {
		return fn(ctx)
	})
	resp, _ := v.(*composer.Response)
	return composer.CloneResponse(resp), err
}
