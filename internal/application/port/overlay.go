package port

import (
	"context"

	"github.com/bnema/lasso/internal/geometry"
)

// Overlay is the capture-surface port. While shown, the surface sits above
// all page content, displays the crosshair cursor, and swallows pointer
// events so the page underneath does not react to the drag.
type Overlay interface {
	// Show installs the full-viewport capture surface with a zero-size
	// rectangle visual.
	Show(ctx context.Context) error

	// Update moves/resizes the rectangle visual. The rect is in absolute
	// document coordinates.
	Update(ctx context.Context, rect geometry.Rect) error

	// Hide removes the capture surface and the rectangle visual.
	// Hiding an overlay that is not shown is a no-op.
	Hide(ctx context.Context) error
}
