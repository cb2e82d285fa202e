// Package ratelimit provides token-bucket rate limiters backed by
// golang.org/x/time/rate for use as a request gate in the before phase.
package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter wraps a token-bucket limiter that decides whether an incoming
// request should be allowed.
type Limiter struct {
	lim *rate.Limiter
}

// NewLimiter creates a Limiter that permits rps requests per second with the
// given burst size.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{lim: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow reports whether a single request may proceed.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// Keyed hands out one Limiter per key (route group, client address), creating
// them lazily with the same rate and burst. It is safe for concurrent use.
type Keyed struct {
	rps   float64
	burst int

	mu       sync.Mutex
	limiters map[string]*Limiter
}

// NewKeyed creates a Keyed limiter set.
func NewKeyed(rps float64, burst int) *Keyed {
	return &Keyed{rps: rps, burst: burst, limiters: make(map[string]*Limiter)}
}

// Get returns the limiter for key, creating it on first use.
func (k *Keyed) Get(key string) *Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	if l, ok := k.limiters[key]; ok {
		return l
	}
	l := NewLimiter(k.rps, k.burst)
	k.limiters[key] = l
	return l
}

// Allow reports whether a request for key may proceed.
func (k *Keyed) Allow(key string) bool {
	return k.Get(key).Allow()
}
