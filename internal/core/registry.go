package core

// Registry collects hooks per phase in registration order. It is not safe for
// concurrent use; registration is expected to happen during setup.
type Registry[H any] struct {
	lists [phaseCount][]H
}

// Add appends h to the list of phase p. Invalid phases are ignored.
func (r *Registry[H]) Add(p Phase, h H) {
	if !p.Valid() {
		return
	}
	r.lists[p] = append(r.lists[p], h)
}

// Len returns the number of hooks registered for p.
func (r *Registry[H]) Len(p Phase) int {
	if !p.Valid() {
		return 0
	}
	return len(r.lists[p])
}

// Snapshot returns an independent copy of the four lists. Later calls to Add
// do not affect a snapshot that was already taken.
func (r *Registry[H]) Snapshot() Lists[H] {
	var s Lists[H]
	for _, p := range Phases {
		if n := len(r.lists[p]); n > 0 {
			s[p] = make([]H, n)
			copy(s[p], r.lists[p])
		}
	}
	return s
}

// Lists is a frozen set of per-phase hook lists, indexed by Phase.
type Lists[H any] [phaseCount][]H

// Get returns the hooks of phase p.
func (l *Lists[H]) Get(p Phase) []H {
	if !p.Valid() {
		return nil
	}
	return l[p]
}
