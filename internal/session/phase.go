// Package session implements the interaction state machine that turns host
// key and pointer events into selection sessions: arm on trigger hold, drag
// a rectangle, select and activate on release, cancel on early release or
// Escape, clear everything on a trigger double-press.
package session

// Phase is the lifecycle position of the current selection session.
type Phase int

const (
	// PhaseIdle means no session is active.
	PhaseIdle Phase = iota
	// PhaseAwaitingDrag means the trigger key is held and the capture
	// surface is up, waiting for a pointer press.
	PhaseAwaitingDrag
	// PhaseDragging means the pointer is down and the rectangle is growing.
	PhaseDragging
	// PhaseCompleted is the transient state of a released drag; the
	// machine resets to idle in the same event.
	PhaseCompleted
	// PhaseCancelled is the transient state of an abandoned session; the
	// machine resets to idle in the same event.
	PhaseCancelled
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingDrag:
		return "awaiting-drag"
	case PhaseDragging:
		return "dragging"
	case PhaseCompleted:
		return "completed"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
