package gorawrlambda

import (
	"github.com/Keksclan/goRawrLambda/cache"
	"github.com/Keksclan/goRawrLambda/hooks"
	"github.com/Keksclan/goRawrLambda/internal/core"
)

// Built-in hooks occupy fixed slots so that the order of options passed to
// New never changes execution order. Lower slots run first; hooks added with
// WithBefore and friends share slotUser and keep their registration order.
const (
	slotRequestID   = 100
	slotHealth      = 200
	slotIPBlock     = 300
	slotRateLimit   = 400
	slotAuth        = 500
	slotBreakerGate = 600
	slotCacheLookup = 700
	slotJSONBody    = 800

	slotUser = 1000

	slotCacheStore   = 2000
	slotErrorHandler = 2000

	slotBreakerRecord   = 100
	slotRequestIDHeader = 2000
	slotCORS            = 2100
	slotAccessLog       = 2200
)

// assemble places every configured built-in hook into the stack.
func (c *config) assemble(store cache.Store) {
	s := &c.stack

	if c.requestID {
		s.Add(core.PhaseBefore, slotRequestID, hooks.RequestID())
		s.Add(core.PhaseFinally, slotRequestIDHeader, hooks.RequestIDHeader())
	}
	if c.healthPath != "" {
		s.Add(core.PhaseBefore, slotHealth, hooks.Health(c.healthPath, c.health))
	}
	if c.ipBlocker != nil {
		s.Add(core.PhaseBefore, slotIPBlock, hooks.IPBlock(c.ipBlocker))
	}
	if c.limiter != nil || c.resolver != nil {
		s.Add(core.PhaseBefore, slotRateLimit, hooks.RateLimit(c.limiter, c.resolver))
	}
	if c.authFn != nil {
		s.Add(core.PhaseBefore, slotAuth, hooks.Authenticate(c.authFn, c.resolver))
	}
	if c.breakers != nil {
		s.Add(core.PhaseBefore, slotBreakerGate, hooks.BreakerGate(c.breakers, c.resolver))
		s.Add(core.PhaseFinally, slotBreakerRecord, hooks.BreakerRecord(c.breakers))
	}
	if store != nil {
		s.Add(core.PhaseBefore, slotCacheLookup, hooks.CacheLookup(store))
		s.Add(core.PhaseAfter, slotCacheStore, hooks.CacheStore(store, c.cacheTTL, c.resolver))
	}
	if c.jsonBody {
		s.Add(core.PhaseBefore, slotJSONBody, hooks.JSONBody())
	}
	if c.errorHandler {
		s.Add(core.PhaseOnError, slotErrorHandler, hooks.ErrorHandler(c.logger))
	}
	if c.cors != nil {
		s.Add(core.PhaseFinally, slotCORS, hooks.CORS(*c.cors))
	}
	if c.accessLog {
		s.Add(core.PhaseFinally, slotAccessLog, hooks.AccessLog(c.logger))
	}
}
