package composer

import (
	"context"
	"errors"
	"runtime/debug"
	"slices"

	"github.com/Keksclan/goRawrLambda/internal/core"
)

// Composer holds the four ordered hook lists and wraps terminal handlers with
// them. Registration methods are meant to be called during setup; they are
// not safe for concurrent use. Wrapped handlers are safe for concurrent use.
type Composer struct {
	hooks core.Registry[Hook]
	cfg   config
}

// New creates an empty Composer.
func New(opts ...Option) *Composer {
	c := &Composer{}
	for _, o := range opts {
		o(&c.cfg)
	}
	return c
}

// Before appends a hook to the before phase.
func (c *Composer) Before(h Hook) *Composer { return c.add(core.PhaseBefore, h) }

// After appends a hook to the after phase.
func (c *Composer) After(h Hook) *Composer { return c.add(core.PhaseAfter, h) }

// OnError appends a hook to the on-error phase.
func (c *Composer) OnError(h Hook) *Composer { return c.add(core.PhaseOnError, h) }

// Finally appends a hook to the finally phase.
func (c *Composer) Finally(h Hook) *Composer { return c.add(core.PhaseFinally, h) }

func (c *Composer) add(p core.Phase, h Hook) *Composer {
	if h != nil {
		c.hooks.Add(p, h)
	}
	return c
}

// Wrap returns a handler that runs h inside the registered phases.
//
// The hook lists are copied when Wrap is called: hooks registered afterwards
// only affect handlers wrapped later.
func (c *Composer) Wrap(h Handler) Handler {
	if h == nil {
		panic("composer: nil handler")
	}
	e := &engine{
		lists:     c.hooks.Snapshot(),
		handler:   h,
		recovery:  c.cfg.recovery,
		observers: slices.Clone(c.cfg.observers),
	}
	return e.invoke
}

// engine executes one frozen set of hook lists around a handler.
type engine struct {
	lists     core.Lists[Hook]
	handler   Handler
	recovery  bool
	observers []Observer
}

// invoke runs a single invocation through the state machine.
func (e *engine) invoke(ctx context.Context, req *Request, inv *Invocation) (*Response, error) {
	if inv == nil {
		inv = NewInvocation("")
	}
	// Each wrapped layer owns the error slot for its own run. A nested layer
	// that recovers hands the enclosing layer its previous state back.
	prevErr, prevFailed := inv.err, inv.failed
	inv.err, inv.failed = nil, false

	for _, o := range e.observers {
		ctx = o.Begin(ctx, req, inv)
	}

	resp, path, err := e.main(ctx, req, inv)

	if err != nil {
		// A failure left behind by a nested layer whose error the handler
		// swallowed does not belong to this layer.
		inv.err, inv.failed = nil, false
		inv.recordErr(err)
		e.transition(ctx, inv, StateError)

		handled, hookErr := e.runOnError(ctx, req, inv)
		switch {
		case hookErr != nil:
			// A failing error hook never re-enters the error path.
			err = errors.Join(hookErr, err)
			path = PathUnhandledError
		case handled != nil:
			resp, err = handled, nil
			path = PathHandledError
		default:
			path = PathUnhandledError
		}
	}

	e.transition(ctx, inv, StateFinally)
	final, finErr := e.runFinally(ctx, req, inv, resp)
	switch {
	case finErr != nil && err != nil:
		err = errors.Join(err, finErr)
	case finErr != nil:
		err = finErr
		path = PathUnhandledError
	case err == nil:
		resp = final
	}

	if err != nil {
		resp = nil
		e.transition(ctx, inv, StateRethrow)
	} else {
		e.transition(ctx, inv, StateReturn)
	}
	for _, o := range e.observers {
		o.End(ctx, inv, path, resp, err)
	}
	if err == nil {
		inv.err, inv.failed = prevErr, prevFailed
	}
	return resp, err
}

// main runs the before phase, the handler and the after phase. A non-nil
// error sends the invocation to the error path.
func (e *engine) main(ctx context.Context, req *Request, inv *Invocation) (*Response, Path, error) {
	e.transition(ctx, inv, StateBefore)
	for _, h := range e.lists.Get(core.PhaseBefore) {
		r, err := e.call(ctx, h, req, inv, nil)
		if err != nil {
			return nil, PathUnhandledError, err
		}
		if r != nil {
			e.transition(ctx, inv, StateShortCircuit)
			return r, PathShortCircuit, nil
		}
	}

	e.transition(ctx, inv, StateHandler)
	resp, err := e.callHandler(ctx, req, inv)
	if err != nil {
		return nil, PathUnhandledError, err
	}

	// Replacements accumulate: each after hook sees the response produced by
	// the hooks before it.
	e.transition(ctx, inv, StateAfter)
	for _, h := range e.lists.Get(core.PhaseAfter) {
		r, err := e.call(ctx, h, req, inv, resp)
		if err != nil {
			return nil, PathUnhandledError, err
		}
		if r != nil {
			resp = r
		}
	}
	return resp, PathSuccess, nil
}

// runOnError offers the recorded failure to each on-error hook in order. The
// first non-nil response wins and stops the phase.
func (e *engine) runOnError(ctx context.Context, req *Request, inv *Invocation) (*Response, error) {
	for _, h := range e.lists.Get(core.PhaseOnError) {
		r, err := e.call(ctx, h, req, inv, nil)
		if err != nil {
			return nil, err
		}
		if r != nil {
			return r, nil
		}
	}
	return nil, nil
}

// runFinally runs every finally hook in order. A non-nil return replaces the
// response seen by the following hooks. The first failure stops the phase.
func (e *engine) runFinally(ctx context.Context, req *Request, inv *Invocation, resp *Response) (*Response, error) {
	for _, h := range e.lists.Get(core.PhaseFinally) {
		r, err := e.call(ctx, h, req, inv, resp)
		if err != nil {
			return nil, err
		}
		if r != nil {
			resp = r
		}
	}
	return resp, nil
}

func (e *engine) call(ctx context.Context, h Hook, req *Request, inv *Invocation, resp *Response) (out *Response, err error) {
	if e.recovery {
		defer recoverInto(&out, &err)
	}
	return h(ctx, req, inv, resp)
}

func (e *engine) callHandler(ctx context.Context, req *Request, inv *Invocation) (out *Response, err error) {
	if e.recovery {
		defer recoverInto(&out, &err)
	}
	return e.handler(ctx, req, inv)
}

func (e *engine) transition(ctx context.Context, inv *Invocation, to State) {
	for _, o := range e.observers {
		o.Transition(ctx, inv, to)
	}
}

// recoverInto turns a panic into a *PanicError. It must be deferred directly.
func recoverInto(out **Response, err *error) {
	if r := recover(); r != nil {
		*out = nil
		*err = &PanicError{Value: r, Stack: debug.Stack()}
	}
}
