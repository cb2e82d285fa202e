package composer

import "go.uber.org/zap"

// config holds the internal configuration assembled via functional options.
type config struct {
	recovery  bool
	observers []Observer
}

// Option configures a Composer.
type Option func(*config)

// WithRecovery converts panics raised by hooks or the handler into a
// *PanicError that follows the normal failure path of the phase it happened
// in, instead of crashing the host process.
func WithRecovery() Option {
	return func(c *config) {
		c.recovery = true
	}
}

// WithObserver appends an observer notified about every invocation.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithLogger logs state transitions at debug level and unhandled failures at
// error level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.observers = append(c.observers, logObserver{log: l})
		}
	}
}
