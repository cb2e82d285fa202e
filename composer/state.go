package composer

// State is a step of the per-invocation state machine:
//
//	INIT → BEFORE → (SHORT_CIRCUIT | HANDLER) → (AFTER | ERROR) → FINALLY → (RETURN | RETHROW)
//
// StateInit is the only entry state; StateReturn and StateRethrow are the only
// terminal states. No state is entered twice during one invocation.
//
// A failing after hook is reported as AFTER followed by ERROR. A failing
// before hook goes from BEFORE straight to ERROR without HANDLER.
type State int

const (
	StateInit State = iota
	StateBefore
	StateShortCircuit
	StateHandler
	StateAfter
	StateError
	StateFinally
	StateReturn
	StateRethrow
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateBefore:
		return "BEFORE"
	case StateShortCircuit:
		return "SHORT_CIRCUIT"
	case StateHandler:
		return "HANDLER"
	case StateAfter:
		return "AFTER"
	case StateError:
		return "ERROR"
	case StateFinally:
		return "FINALLY"
	case StateReturn:
		return "RETURN"
	case StateRethrow:
		return "RETHROW"
	default:
		return "UNKNOWN"
	}
}

// Path classifies how an invocation exited.
type Path int

const (
	// PathSuccess: the handler succeeded and the after phase completed.
	PathSuccess Path = iota
	// PathShortCircuit: a before hook produced the response.
	PathShortCircuit
	// PathHandledError: a failure was turned into a response by an on-error hook.
	PathHandledError
	// PathUnhandledError: the failure was returned to the caller.
	PathUnhandledError
)

func (p Path) String() string {
	switch p {
	case PathSuccess:
		return "success"
	case PathShortCircuit:
		return "short_circuit"
	case PathHandledError:
		return "handled_error"
	case PathUnhandledError:
		return "unhandled_error"
	default:
		return "unknown"
	}
}
