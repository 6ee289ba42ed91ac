package port

import "context"

// Activator performs the primary activation behavior on one element,
// addressed by its snapshot ID. Implementations must tolerate elements
// that disappeared since the snapshot was taken; such calls fail, they do
// not panic or hang.
type Activator interface {
	// Focus moves keyboard focus to the element. Best-effort: callers
	// ignore the error beyond logging it.
	Focus(ctx context.Context, elementID string) error

	// Click invokes the element's click-equivalent activation.
	Click(ctx context.Context, elementID string) error
}
