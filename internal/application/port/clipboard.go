package port

import "context"

// Clipboard defines the port interface for clipboard writes.
// This abstracts platform-specific clipboard implementations.
type Clipboard interface {
	// WriteText copies text to the clipboard.
	WriteText(ctx context.Context, text string) error
}
