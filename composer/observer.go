package composer

import (
	"context"

	"go.uber.org/zap"
)

// Observer watches invocations of a wrapped handler. Implementations must be
// safe for concurrent use because one observer serves every invocation.
type Observer interface {
	// Begin is called before the before phase. The returned context is passed
	// to every hook and to the terminal handler.
	Begin(ctx context.Context, req *Request, inv *Invocation) context.Context

	// Transition is called each time the invocation enters a new state.
	Transition(ctx context.Context, inv *Invocation, to State)

	// End is called once the invocation has reached a terminal state.
	End(ctx context.Context, inv *Invocation, path Path, resp *Response, err error)
}

// logObserver reports invocation progress to a zap logger.
type logObserver struct {
	log *zap.Logger
}

func (o logObserver) Begin(ctx context.Context, req *Request, inv *Invocation) context.Context {
	o.log.Debug("invocation started",
		zap.String("request_id", inv.RequestID),
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
	)
	return ctx
}

func (o logObserver) Transition(_ context.Context, inv *Invocation, to State) {
	o.log.Debug("invocation state", zap.String("request_id", inv.RequestID), zap.Stringer("state", to))
}

func (o logObserver) End(_ context.Context, inv *Invocation, path Path, resp *Response, err error) {
	fields := []zap.Field{
		zap.String("request_id", inv.RequestID),
		zap.Stringer("path", path),
	}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode))
	}
	if path == PathUnhandledError {
		o.log.Error("invocation failed", append(fields, zap.Error(err))...)
		return
	}
	o.log.Debug("invocation finished", fields...)
}
