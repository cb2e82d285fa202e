package core

import (
	"cmp"
	"slices"
)

// entry is a single hook placed in a fixed slot of a phase. Lower slots run
// first.
type entry[H any] struct {
	Phase Phase
	Slot  int
	Hook  H
}

// StackBuilder collects hooks from independently applied options and produces
// per-phase lists whose order depends on each hook's slot rather than on the
// order the options were passed in.
type StackBuilder[H any] struct {
	entries []entry[H]
}

// Add places hook h into slot of phase p.
func (b *StackBuilder[H]) Add(p Phase, slot int, h H) {
	b.entries = append(b.entries, entry[H]{Phase: p, Slot: slot, Hook: h})
}

// Len returns the number of collected entries.
func (b *StackBuilder[H]) Len() int {
	return len(b.entries)
}

// Build sorts the collected entries by slot (stable, so hooks sharing a slot
// keep their registration order) and calls register for each one in the
// resulting order.
func (b *StackBuilder[H]) Build(register func(Phase, H)) {
	sorted := slices.Clone(b.entries)
	slices.SortStableFunc(sorted, func(a, c entry[H]) int {
		return cmp.Compare(a.Slot, c.Slot)
	})
	for _, e := range sorted {
		register(e.Phase, e.Hook)
	}
}
