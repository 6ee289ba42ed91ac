package port

import "context"

// Highlighter applies the selected-element outline. Both operations are
// idempotent: applying to an already-highlighted element or clearing twice
// changes nothing.
type Highlighter interface {
	// Apply outlines the elements with the given snapshot IDs.
	Apply(ctx context.Context, elementIDs []string) error

	// Clear removes every outline this system applied.
	Clear(ctx context.Context) error
}
