package webkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/logging"
	"github.com/bnema/lasso/internal/session"
)

// snapshotSink receives snapshots decoded from pointer-up events.
type snapshotSink interface {
	StoreSnapshot(*port.Snapshot)
}

// EventBridge translates content-script events into kernel calls. It runs
// on the GTK main loop goroutine, which satisfies the controller's
// single-goroutine contract.
type EventBridge struct {
	sink       snapshotSink
	ctrl       *session.Controller
	triggerKey string
	logger     zerolog.Logger
}

// NewEventBridge wires page events to a session controller. triggerKey is
// compared against KeyboardEvent.key values.
func NewEventBridge(ctx context.Context, sink snapshotSink, ctrl *session.Controller, triggerKey string) *EventBridge {
	return &EventBridge{
		sink:       sink,
		ctrl:       ctrl,
		triggerKey: triggerKey,
		logger:     logging.FromContext(ctx).With().Str("component", "event-bridge").Logger(),
	}
}

// Register subscribes the bridge to the router's event types.
func (b *EventBridge) Register(router *MessageRouter) error {
	for msgType, handler := range map[string]MessageHandlerFunc{
		"key":     b.handleKey,
		"pointer": b.handlePointer,
		"ready":   b.handleReady,
	} {
		if err := router.RegisterHandler(msgType, handler); err != nil {
			return fmt.Errorf("register %s handler: %w", msgType, err)
		}
	}
	return nil
}

func (b *EventBridge) handleKey(ctx context.Context, _ WebViewID, raw json.RawMessage) error {
	var ev PageEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode key event: %w", err)
	}

	switch {
	case ev.Key == b.triggerKey && ev.Phase == "down":
		b.ctrl.TriggerPressed(ctx, ev.Repeat, ev.TextInputFocused)
	case ev.Key == b.triggerKey && ev.Phase == "up":
		b.ctrl.TriggerReleased(ctx)
	case ev.Key == "Escape" && ev.Phase == "down":
		b.ctrl.EscapePressed(ctx)
	}
	return nil
}

func (b *EventBridge) handlePointer(ctx context.Context, _ WebViewID, raw json.RawMessage) error {
	var ev PageEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode pointer event: %w", err)
	}

	switch ev.Phase {
	case "down":
		b.ctrl.PointerPressed(ctx, ev.X, ev.Y)
	case "move":
		b.ctrl.PointerMoved(ctx, ev.X, ev.Y)
	case "up":
		if ev.Snapshot != nil {
			b.sink.StoreSnapshot(DecodeSnapshot(ev.Snapshot))
		} else {
			b.logger.Warn().Msg("pointer-up event without snapshot")
		}
		b.ctrl.PointerReleased(ctx, ev.X, ev.Y)
	}
	return nil
}

func (b *EventBridge) handleReady(_ context.Context, webviewID WebViewID, _ json.RawMessage) error {
	b.logger.Debug().Uint64("webview_id", uint64(webviewID)).Msg("content script ready")
	return nil
}
