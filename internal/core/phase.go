package core

// Phase identifies one of the four fixed hook lists of a composer.
type Phase int

const (
	PhaseBefore Phase = iota
	PhaseAfter
	PhaseOnError
	PhaseFinally

	phaseCount
)

// Phases lists every phase in execution order.
var Phases = [phaseCount]Phase{PhaseBefore, PhaseAfter, PhaseOnError, PhaseFinally}

func (p Phase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	case PhaseOnError:
		return "on_error"
	case PhaseFinally:
		return "finally"
	default:
		return "unknown"
	}
}

// Valid reports whether p names one of the four phases.
func (p Phase) Valid() bool {
	return p >= PhaseBefore && p < phaseCount
}
