package port

import (
	"context"

	"github.com/bnema/lasso/internal/selection"
)

// Snapshot is one coherent read of the host document taken at selection
// time. Element views stay valid only until the host mutates the document;
// consumers read them immediately and keep only element IDs.
type Snapshot struct {
	// Elements lists every candidate element in document encounter order.
	Elements []selection.ElementView

	// TextInputFocused reports whether keyboard focus was inside a
	// text-input-like element (input, textarea, editable region) when the
	// snapshot was taken.
	TextInputFocused bool
}

// DocumentView is the render-tree query port: it produces candidate
// snapshots for the selection kernel.
type DocumentView interface {
	// Snapshot reads the current candidate set from the host document.
	Snapshot(ctx context.Context) (*Snapshot, error)
}
