package breaker

import "sync"

// Set lazily creates one Breaker per key, typically a route group, so that a
// failing route does not trip the circuit for healthy ones.
type Set struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewSet creates an empty Set whose breakers share cfg.
func NewSet(cfg Config) *Set {
	return &Set{cfg: cfg, breakers: make(map[string]*Breaker)}
}

// Get returns the breaker for key, creating it on first use.
func (s *Set) Get(key string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[key]
	if !ok {
		b = New(s.cfg)
		s.breakers[key] = b
	}
	return b
}
