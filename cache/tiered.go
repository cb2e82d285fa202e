package cache

import (
	"context"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
)

// Tiered combines an in-process store with a shared one. Reads check the
// local store first, then the shared store. Writes populate both.
type Tiered struct {
	l1 *Memory
	l2 Store

	// promoteTTL is used when a shared hit is copied into the local store,
	// since the remaining TTL of the shared entry is unknown. Non-positive
	// values disable promotion.
	promoteTTL time.Duration

	g group
}

// NewTiered creates a two-level store. Shared hits are promoted into l1 for
// promoteTTL; a non-positive promoteTTL disables promotion.
func NewTiered(l1 *Memory, l2 Store, promoteTTL time.Duration) *Tiered {
	return &Tiered{l1: l1, l2: l2, promoteTTL: promoteTTL}
}

// Get checks l1, then l2, promoting shared hits. Concurrent l1 misses for
// the same key share one l2 read.
func (t *Tiered) Get(ctx context.Context, key string) (*composer.Response, bool, error) {
	if v, ok, err := t.l1.Get(ctx, key); err != nil || ok {
		return v, ok, err
	}
	v, err := t.g.do(ctx, key, func(ctx context.Context) (*composer.Response, error) {
		v, ok, err := t.l2.Get(ctx, key)
		if err != nil || !ok {
			return nil, err
		}
		if t.promoteTTL > 0 {
			_ = t.l1.Set(ctx, key, v, t.promoteTTL)
		}
		return v, nil
	})
	if err != nil || v == nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set writes resp to l2, then l1.
func (t *Tiered) Set(ctx context.Context, key string, resp *composer.Response, ttl time.Duration) error {
	if err := t.l2.Set(ctx, key, resp, ttl); err != nil {
		return err
	}
	return t.l1.Set(ctx, key, resp, ttl)
}
