package session

import (
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/selection"
)

// Session is the explicit state of one selection interaction: the phase,
// the drag origin, and the rectangle drawn so far. It is a value; the
// controller owns the single live instance.
type Session struct {
	Phase  Phase
	Origin geometry.Point
	Rect   geometry.Rect
}

// Active reports whether a session is in progress.
func (s Session) Active() bool {
	return s.Phase == PhaseAwaitingDrag || s.Phase == PhaseDragging
}

// RunningSet accumulates selected elements across sessions until explicitly
// cleared. Insertion order is preserved and entries are unique. The textual
// representation of each element is captured at merge time, because element
// views do not outlive their snapshot.
type RunningSet struct {
	order []string
	texts []string
	seen  map[string]struct{}
}

// NewRunningSet returns an empty set.
func NewRunningSet() *RunningSet {
	return &RunningSet{seen: make(map[string]struct{})}
}

// Merge adds elements not already present and returns their IDs in input
// order. Already-present elements are skipped entirely.
func (s *RunningSet) Merge(els []selection.ElementView) []string {
	var added []string
	for _, el := range els {
		id := el.ID()
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.order = append(s.order, id)
		s.texts = append(s.texts, selection.TextRepresentation(el))
		added = append(added, id)
	}
	return added
}

// IDs returns all member IDs in insertion order.
func (s *RunningSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Texts returns the non-empty textual representations in insertion order.
func (s *RunningSet) Texts() []string {
	var out []string
	for _, t := range s.texts {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the member count.
func (s *RunningSet) Len() int { return len(s.order) }

// Clear empties the set.
func (s *RunningSet) Clear() {
	s.order = nil
	s.texts = nil
	s.seen = make(map[string]struct{})
}
