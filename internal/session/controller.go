package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/activation"
	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/logging"
	"github.com/bnema/lasso/internal/selection"
)

// Config wires a controller to its collaborators.
type Config struct {
	Policy    selection.Policy
	Selector  *selection.Selector
	Sequencer *activation.Sequencer
	Document  port.DocumentView
	Overlay   port.Overlay
	Highlight port.Highlighter
	Notify    port.Notifier
	Clipboard port.Clipboard

	// Exclude removes the host's own UI from candidate sets. Optional.
	Exclude selection.ExcludeFunc

	// Now is the time source for the double-press window. Defaults to
	// time.Now; tests substitute a stepped clock.
	Now func() time.Time
}

func (c Config) validate() error {
	switch {
	case c.Selector == nil:
		return errors.New("session: selector is required")
	case c.Sequencer == nil:
		return errors.New("session: sequencer is required")
	case c.Document == nil:
		return errors.New("session: document view is required")
	case c.Overlay == nil:
		return errors.New("session: overlay is required")
	case c.Highlight == nil:
		return errors.New("session: highlighter is required")
	case c.Notify == nil:
		return errors.New("session: notifier is required")
	case c.Clipboard == nil:
		return errors.New("session: clipboard is required")
	}
	return nil
}

// Controller is the interaction state machine. It must be driven from the
// host's single UI event goroutine; only that goroutine mutates the session
// and the running set, so the single-session guard replaces locking.
type Controller struct {
	cfg    Config
	logger zerolog.Logger

	session Session
	set     *RunningSet

	lastTrigger time.Time
	now         func() time.Time

	pendingSwap *policySwap
}

// policySwap carries rebuilt policy collaborators until the next session
// start installs them.
type policySwap struct {
	policy    selection.Policy
	selector  *selection.Selector
	sequencer *activation.Sequencer
}

// NewController builds an idle controller.
func NewController(ctx context.Context, cfg Config) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		cfg:    cfg,
		logger: logging.FromContext(ctx).With().Str("component", "session").Logger(),
		set:    NewRunningSet(),
		now:    now,
	}, nil
}

// Session returns a copy of the current session state.
func (c *Controller) Session() Session { return c.session }

// SelectedIDs returns the running selection in insertion order.
func (c *Controller) SelectedIDs() []string { return c.set.IDs() }

// SelectionCount returns the running selection size.
func (c *Controller) SelectionCount() int { return c.set.Len() }

// ApplyPolicy stages a rebuilt policy and its derived collaborators. When
// idle it takes effect immediately; an active session keeps the policy it
// started with, and the swap lands at the next session start. Call from
// the same goroutine that drives the event methods.
func (c *Controller) ApplyPolicy(policy selection.Policy, selector *selection.Selector, sequencer *activation.Sequencer) error {
	if selector == nil || sequencer == nil {
		return errors.New("session: policy swap needs selector and sequencer")
	}
	c.pendingSwap = &policySwap{policy: policy, selector: selector, sequencer: sequencer}
	if !c.session.Active() {
		c.installPendingPolicy()
	}
	return nil
}

func (c *Controller) installPendingPolicy() {
	if c.pendingSwap == nil {
		return
	}
	c.cfg.Policy = c.pendingSwap.policy
	c.cfg.Selector = c.pendingSwap.selector
	c.cfg.Sequencer = c.pendingSwap.sequencer
	c.pendingSwap = nil
	c.logger.Debug().Msg("selection policy swapped")
}

// TriggerPressed handles a trigger keydown. Auto-repeat is ignored, as is a
// press while keyboard focus sits in a text-input-like element. A press
// within the double-press window of the previous qualifying press clears
// the accumulated selection instead of arming.
func (c *Controller) TriggerPressed(ctx context.Context, autoRepeat, textInputFocused bool) {
	if autoRepeat {
		return
	}
	if c.session.Active() {
		// Single-session guard.
		c.logger.Debug().Str("phase", c.session.Phase.String()).Msg("trigger press ignored, session active")
		return
	}
	if textInputFocused {
		c.logger.Debug().Msg("trigger press ignored, text input focused")
		return
	}

	// A swap staged mid-session lands at the next session start.
	c.installPendingPolicy()

	now := c.now()
	if !c.lastTrigger.IsZero() && now.Sub(c.lastTrigger) <= c.cfg.Policy.DoublePressWindow {
		// Double press consumes the keypress: clear everything, stay idle.
		c.lastTrigger = time.Time{}
		c.clearAll(ctx)
		return
	}
	c.lastTrigger = now

	c.arm(ctx)
}

// TriggerReleased handles the trigger keyup: releasing before the drag
// completes cancels the session.
func (c *Controller) TriggerReleased(ctx context.Context) {
	if !c.session.Active() {
		return
	}
	c.cancel(ctx, "trigger released")
}

// EscapePressed cancels an active session, same as an early trigger
// release.
func (c *Controller) EscapePressed(ctx context.Context) {
	if !c.session.Active() {
		return
	}
	c.cancel(ctx, "escape")
}

// PointerPressed starts the drag when a session is armed.
func (c *Controller) PointerPressed(ctx context.Context, x, y float64) {
	if c.session.Phase != PhaseAwaitingDrag {
		return
	}

	origin := geometry.Point{X: x, Y: y}
	c.session.Origin = origin
	c.session.Rect = geometry.RectBetween(origin, origin)
	c.transition(PhaseDragging)

	if err := c.cfg.Overlay.Update(ctx, c.session.Rect); err != nil {
		c.logger.Warn().Err(err).Msg("overlay update failed")
	}
}

// PointerMoved grows the rectangle while dragging. Min/max normalization
// keeps the rectangle well-formed in any drag direction.
func (c *Controller) PointerMoved(ctx context.Context, x, y float64) {
	if c.session.Phase != PhaseDragging {
		return
	}

	c.session.Rect = geometry.RectBetween(c.session.Origin, geometry.Point{X: x, Y: y})
	if err := c.cfg.Overlay.Update(ctx, c.session.Rect); err != nil {
		c.logger.Warn().Err(err).Msg("overlay update failed")
	}
}

// PointerReleased completes the session: the final rectangle is selected,
// new elements are activated and merged into the running set, highlights
// and the count toast are refreshed, and the textual representation of the
// whole set goes to the clipboard.
func (c *Controller) PointerReleased(ctx context.Context, x, y float64) {
	if c.session.Phase != PhaseDragging {
		return
	}

	rect := geometry.RectBetween(c.session.Origin, geometry.Point{X: x, Y: y})
	c.session.Rect = rect
	c.transition(PhaseCompleted)
	c.hideOverlay(ctx)

	c.complete(ctx, rect)
	c.resetToIdle()
}

func (c *Controller) complete(ctx context.Context, rect geometry.Rect) {
	snap, err := c.cfg.Document.Snapshot(ctx)
	if err != nil {
		// Degrades to an empty selection, never to a surfaced error.
		c.logger.Error().Err(err).Msg("document snapshot failed")
		return
	}

	result := c.cfg.Selector.SelectInRect(rect, snap.Elements, c.cfg.Exclude)
	added := c.set.Merge(result)

	c.logger.Debug().
		Int("selected", len(result)).
		Int("new", len(added)).
		Int("total", c.set.Len()).
		Msg("session completed")

	// Only newly merged elements are activated; re-selecting an element
	// never re-activates it.
	c.cfg.Sequencer.Activate(ctx, added)

	if err := c.cfg.Highlight.Apply(ctx, c.set.IDs()); err != nil {
		c.logger.Warn().Err(err).Msg("highlight apply failed")
	}

	c.toastCount(ctx)
	c.copySelection(ctx)
}

func (c *Controller) arm(ctx context.Context) {
	// A fresh session starts visually clean; the running set itself is
	// kept until a double-press clears it.
	if err := c.cfg.Highlight.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("highlight clear failed")
	}
	if err := c.cfg.Overlay.Show(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("overlay show failed")
	}
	c.session = Session{}
	c.transition(PhaseAwaitingDrag)
}

func (c *Controller) cancel(ctx context.Context, reason string) {
	c.hideOverlay(ctx)
	c.logger.Debug().Str("reason", reason).Msg("session cancelled")
	c.transition(PhaseCancelled)
	c.resetToIdle()
}

// resetToIdle leaves the transient completed/cancelled state in the same
// event that entered it.
func (c *Controller) resetToIdle() {
	c.transition(PhaseIdle)
	c.session = Session{}
}

func (c *Controller) clearAll(ctx context.Context) {
	c.set.Clear()
	if err := c.cfg.Highlight.Clear(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("highlight clear failed")
	}
	if err := c.cfg.Notify.Show(ctx, "Selection cleared", c.cfg.Policy.ToastDuration); err != nil {
		c.logger.Debug().Err(err).Msg("toast failed")
	}
	c.logger.Debug().Msg("selection cleared by double press")
}

func (c *Controller) toastCount(ctx context.Context) {
	count := c.set.Len()
	msg := fmt.Sprintf("%d elements selected", count)
	if count == 1 {
		msg = "1 element selected"
	}
	if err := c.cfg.Notify.Show(ctx, msg, c.cfg.Policy.ToastDuration); err != nil {
		c.logger.Debug().Err(err).Msg("toast failed")
	}
}

// copySelection writes the whole running selection to the clipboard.
// Failures are logged, never surfaced.
func (c *Controller) copySelection(ctx context.Context) {
	texts := c.set.Texts()
	if len(texts) == 0 {
		return
	}
	if err := c.cfg.Clipboard.WriteText(ctx, strings.Join(texts, "\n")); err != nil {
		c.logger.Warn().Err(err).Msg("clipboard write failed")
	}
}

func (c *Controller) hideOverlay(ctx context.Context) {
	if err := c.cfg.Overlay.Hide(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("overlay hide failed")
	}
}

func (c *Controller) transition(to Phase) {
	from := c.session.Phase
	c.session.Phase = to
	c.logger.Trace().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("phase transition")
}
