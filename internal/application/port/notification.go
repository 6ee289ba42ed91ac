package port

import (
	"context"
	"time"
)

// Notifier shows the transient selection-count toast. A new toast always
// replaces any prior instance; the host auto-dismisses it after duration.
type Notifier interface {
	// Show displays the message for the given duration.
	Show(ctx context.Context, message string, duration time.Duration) error
}
