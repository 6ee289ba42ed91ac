package webkit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/bnema/puregotk-webkit/javascriptcore"
	"github.com/bnema/puregotk-webkit/webkit"

	"github.com/bnema/lasso/internal/logging"
)

// MessageHandlerName is the script message handler registered with
// WebKit; the content script posts to
// window.webkit.messageHandlers.lasso.
const MessageHandlerName = "lasso"

// MessageHandler handles one decoded page event. The raw JSON carries the
// whole event object including its type tag.
type MessageHandler interface {
	Handle(ctx context.Context, webviewID WebViewID, raw json.RawMessage) error
}

// MessageHandlerFunc adapts a function to the MessageHandler interface.
type MessageHandlerFunc func(ctx context.Context, webviewID WebViewID, raw json.RawMessage) error

// Handle calls f(ctx, webviewID, raw).
func (f MessageHandlerFunc) Handle(ctx context.Context, webviewID WebViewID, raw json.RawMessage) error {
	return f(ctx, webviewID, raw)
}

// MessageRouter dispatches script-message events to registered handlers.
// Handlers run on the GTK main loop goroutine, in delivery order.
type MessageRouter struct {
	handlers map[string]MessageHandler
	baseCtx  context.Context

	mu        sync.RWMutex
	callbacks []interface{}
	signals   []uint32
}

// NewMessageRouter creates a new message router.
func NewMessageRouter(ctx context.Context) *MessageRouter {
	if ctx == nil {
		ctx = context.Background()
	}

	return &MessageRouter{
		handlers: make(map[string]MessageHandler),
		baseCtx:  ctx,
	}
}

// RegisterHandler registers a handler for a message type.
func (r *MessageRouter) RegisterHandler(msgType string, handler MessageHandler) error {
	if msgType == "" {
		return errors.New("message type cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[msgType] = handler
	return nil
}

// SetupMessageHandler wires the router into the given UserContentManager.
func (r *MessageRouter) SetupMessageHandler(ucm *webkit.UserContentManager) (uint32, error) {
	log := logging.FromContext(r.baseCtx).With().Str("component", "message-router").Logger()

	if ucm == nil {
		return 0, errors.New("user content manager is nil")
	}

	// Connect the signal before registering the handler to avoid races, as
	// the WebKit documentation recommends.
	cb := func(sender webkit.UserContentManager, valuePtr uintptr) {
		r.handleScriptMessage(sender, valuePtr)
	}

	r.mu.Lock()
	r.callbacks = append(r.callbacks, cb) // keep callback alive
	r.mu.Unlock()

	signalID := ucm.ConnectScriptMessageReceivedWithDetail(MessageHandlerName, &cb)

	r.mu.Lock()
	r.signals = append(r.signals, signalID)
	r.mu.Unlock()

	// nil world registers in the main world, where the content script runs
	if ok := ucm.RegisterScriptMessageHandler(MessageHandlerName, nil); !ok {
		return 0, errors.New("failed to register script message handler in main world")
	}

	log.Debug().
		Str("handler", MessageHandlerName).
		Uint32("signal_id", signalID).
		Msg("script message handler connected")

	return signalID, nil
}

// handleScriptMessage decodes the JSC value and routes it by type.
func (r *MessageRouter) handleScriptMessage(senderUCM webkit.UserContentManager, valuePtr uintptr) {
	log := logging.FromContext(r.baseCtx).With().Str("component", "message-router").Logger()

	if valuePtr == 0 {
		log.Warn().Msg("received script message with nil value pointer")
		return
	}

	jscValue := javascriptcore.ValueNewFromInternalPtr(valuePtr)
	if jscValue == nil {
		log.Warn().Msg("failed to wrap script message JSC value")
		return
	}

	rawJSON := jscValue.ToJson(0)
	if rawJSON == "" {
		log.Warn().Msg("script message JSON is empty")
		return
	}

	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(rawJSON), &tag); err != nil {
		log.Warn().Err(err).Str("json", rawJSON).Msg("failed to unmarshal script message")
		return
	}
	if tag.Type == "" {
		log.Warn().Msg("script message missing type")
		return
	}

	handler, ok := r.getHandler(tag.Type)
	if !ok {
		log.Warn().Str("type", tag.Type).Msg("no handler registered for message type")
		return
	}

	var webviewID WebViewID
	if wv := lookupSenderWebView(senderUCM); wv != nil {
		webviewID = wv.ID()
	}

	if err := handler.Handle(r.baseCtx, webviewID, json.RawMessage(rawJSON)); err != nil {
		log.Error().Err(err).Str("type", tag.Type).Msg("message handler returned error")
	}
}

func lookupSenderWebView(senderUCM webkit.UserContentManager) *WebView {
	ptr := senderUCM.GoPointer()
	if ptr == 0 {
		return nil
	}

	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	for _, wv := range globalRegistry.views {
		if wv.ucm != nil && wv.ucm.GoPointer() == ptr {
			return wv
		}
	}
	return nil
}

func (r *MessageRouter) getHandler(msgType string) (MessageHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[msgType]
	return handler, ok
}
