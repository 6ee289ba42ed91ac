package activation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/logging"
)

// Sequencer activates batches of elements in order, spacing activations
// apart so one element's side effects (navigation, re-render) get a chance
// to settle before the next fires. Once a batch is scheduled it runs to the
// end: there is no cancellation, and a failing element never blocks the
// ones scheduled after it.
type Sequencer struct {
	activator port.Activator
	clock     Clock
	stagger   time.Duration
	logger    zerolog.Logger
	batches   atomic.Uint64
}

// NewSequencer builds a sequencer. stagger is the delay between consecutive
// activations; the first element fires without delay.
func NewSequencer(ctx context.Context, activator port.Activator, clock Clock, stagger time.Duration) *Sequencer {
	return &Sequencer{
		activator: activator,
		clock:     clock,
		stagger:   stagger,
		logger:    logging.FromContext(ctx).With().Str("component", "sequencer").Logger(),
	}
}

// Activate schedules one activation per element at index*stagger from now.
// Order is guaranteed; completion is asynchronous.
func (s *Sequencer) Activate(ctx context.Context, elementIDs []string) {
	if len(elementIDs) == 0 {
		return
	}

	batch := s.batches.Add(1)
	s.logger.Debug().
		Uint64("batch", batch).
		Int("elements", len(elementIDs)).
		Dur("stagger", s.stagger).
		Msg("scheduling activation batch")

	for i, id := range elementIDs {
		s.clock.AfterFunc(time.Duration(i)*s.stagger, func() {
			s.activateOne(ctx, batch, i, id)
		})
	}
}

func (s *Sequencer) activateOne(ctx context.Context, batch uint64, index int, id string) {
	// Focus is best-effort; activation proceeds regardless.
	if err := s.activator.Focus(ctx, id); err != nil {
		s.logger.Debug().
			Uint64("batch", batch).
			Str("element", id).
			Err(err).
			Msg("focus failed")
	}

	if err := s.activator.Click(ctx, id); err != nil {
		s.logger.Debug().
			Uint64("batch", batch).
			Int("index", index).
			Str("element", id).
			Err(err).
			Msg("activation failed")
		return
	}

	s.logger.Trace().
		Uint64("batch", batch).
		Int("index", index).
		Str("element", id).
		Msg("element activated")
}
