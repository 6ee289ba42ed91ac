// Package webkit adapts WebKitGTK to the application ports: it owns the
// embedded web view, injects the content script, and bridges page events
// to the selection kernel.
package webkit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/logging"
)

// WebViewID identifies a WebView in the process-wide registry.
type WebViewID uint64

// LoadEvent represents WebKit load events.
type LoadEvent int

const (
	LoadStarted   LoadEvent = LoadEvent(webkit.LoadStartedValue)
	LoadCommitted LoadEvent = LoadEvent(webkit.LoadCommittedValue)
	LoadFinished  LoadEvent = LoadEvent(webkit.LoadFinishedValue)
)

// webViewRegistry tracks all active WebViews.
type webViewRegistry struct {
	views   map[WebViewID]*WebView
	counter atomic.Uint64
	mu      sync.RWMutex
}

var globalRegistry = &webViewRegistry{
	views: make(map[WebViewID]*WebView),
}

func (r *webViewRegistry) register(wv *WebView) WebViewID {
	id := WebViewID(r.counter.Add(1))
	r.mu.Lock()
	r.views[id] = wv
	r.mu.Unlock()
	return id
}

func (r *webViewRegistry) unregister(id WebViewID) {
	r.mu.Lock()
	delete(r.views, id)
	r.mu.Unlock()
}

// WebView wraps webkit.WebView with Go-level state tracking and callbacks.
type WebView struct {
	id    WebViewID
	inner *webkit.WebView
	ucm   *webkit.UserContentManager

	destroyed atomic.Bool
	uri       string
	title     string
	isLoading bool

	signalIDs []uint32

	// OnLoadChanged is set by the UI layer.
	OnLoadChanged func(LoadEvent)

	logger zerolog.Logger
	mu     sync.RWMutex

	frontendAttached atomic.Bool

	// asyncCallbacks keeps references to async JS callbacks to prevent GC
	asyncCallbacks []interface{}
}

// NewWebView creates a new WebView.
func NewWebView(logger zerolog.Logger) (*WebView, error) {
	inner := webkit.NewWebView()
	if inner == nil {
		return nil, fmt.Errorf("failed to create webkit webview")
	}

	wv := &WebView{
		inner:     inner,
		ucm:       inner.GetUserContentManager(),
		logger:    logger.With().Str("component", "webview").Logger(),
		signalIDs: make([]uint32, 0, 2),
	}

	wv.id = globalRegistry.register(wv)
	wv.connectSignals()

	wv.logger.Debug().Uint64("id", uint64(wv.id)).Msg("webview created")

	return wv, nil
}

// connectSignals sets up signal handlers for the WebView.
func (wv *WebView) connectSignals() {
	loadChangedCb := func(inner webkit.WebView, event webkit.LoadEvent) {
		wv.mu.Lock()
		wv.uri = inner.GetUri()
		wv.title = inner.GetTitle()

		switch event {
		case webkit.LoadStartedValue:
			wv.isLoading = true
		case webkit.LoadFinishedValue:
			wv.isLoading = false
		}
		wv.mu.Unlock()

		if wv.OnLoadChanged != nil {
			wv.OnLoadChanged(LoadEvent(event))
		}
	}
	sigID := wv.inner.ConnectLoadChanged(&loadChangedCb)
	wv.signalIDs = append(wv.signalIDs, sigID)
}

// ID returns the unique identifier for this WebView.
func (wv *WebView) ID() WebViewID {
	return wv.id
}

// Widget returns the underlying webkit.WebView for GTK embedding.
func (wv *WebView) Widget() *webkit.WebView {
	return wv.inner
}

// LoadURI loads the given URI.
func (wv *WebView) LoadURI(ctx context.Context, uri string) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview %d is destroyed", wv.id)
	}
	wv.inner.LoadUri(uri)
	logging.FromContext(ctx).Debug().Str("uri", uri).Msg("loading URI")
	return nil
}

// LoadHTML loads HTML content with an optional base URI.
func (wv *WebView) LoadHTML(ctx context.Context, content, baseURI string) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview %d is destroyed", wv.id)
	}
	var baseURIPtr *string
	if baseURI != "" {
		baseURIPtr = &baseURI
	}
	wv.inner.LoadHtml(content, baseURIPtr)
	return nil
}

// Reload reloads the current page.
func (wv *WebView) Reload(ctx context.Context) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview %d is destroyed", wv.id)
	}
	wv.inner.Reload()
	return nil
}

// URI returns the current URI.
func (wv *WebView) URI() string {
	wv.mu.RLock()
	defer wv.mu.RUnlock()
	return wv.uri
}

// Title returns the current page title.
func (wv *WebView) Title() string {
	wv.mu.RLock()
	defer wv.mu.RUnlock()
	return wv.title
}

// IsLoading returns true if a page is currently loading.
func (wv *WebView) IsLoading() bool {
	wv.mu.RLock()
	defer wv.mu.RUnlock()
	return wv.isLoading
}

// IsDestroyed returns true if the WebView has been destroyed.
func (wv *WebView) IsDestroyed() bool {
	return wv.destroyed.Load()
}

// Destroy cleans up the WebView resources.
func (wv *WebView) Destroy() {
	if wv.destroyed.Swap(true) {
		return
	}

	globalRegistry.unregister(wv.id)

	wv.logger.Debug().Uint64("id", uint64(wv.id)).Msg("webview destroyed")
}

// RunJavaScript executes script in the main world. This is
// fire-and-forget: it does not block and errors are logged
// asynchronously. Safe to call from any context including GTK signal
// handlers.
func (wv *WebView) RunJavaScript(ctx context.Context, script string) {
	if wv.destroyed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.FromContext(ctx)

	cb := gio.AsyncReadyCallback(func(_ uintptr, resPtr uintptr, _ uintptr) {
		if resPtr == 0 {
			log.Warn().Uint64("webview_id", uint64(wv.id)).Msg("RunJavaScript: nil async result")
			return
		}

		res := &gio.AsyncResultBase{Ptr: resPtr}
		value, err := wv.inner.EvaluateJavascriptFinish(res)
		if err != nil {
			log.Warn().Err(err).Uint64("webview_id", uint64(wv.id)).Msg("RunJavaScript: failed")
			return
		}

		if value != nil {
			if jscCtx := value.GetContext(); jscCtx != nil {
				if exc := jscCtx.GetException(); exc != nil {
					log.Warn().
						Str("exception", exc.GetMessage()).
						Uint64("webview_id", uint64(wv.id)).
						Msg("RunJavaScript: JS exception")
				}
			}
		}
	})

	// prevent callback from being GC'd before it's called
	wv.mu.Lock()
	wv.asyncCallbacks = append(wv.asyncCallbacks, cb)
	wv.mu.Unlock()

	// worldName nil targets the main world, sourceUri is unused
	wv.inner.EvaluateJavascript(script, -1, nil, nil, nil, &cb, 0)
}

// AttachFrontend injects the content script/styles and wires the message
// router once per WebView.
func (wv *WebView) AttachFrontend(ctx context.Context, injector *ContentInjector, router *MessageRouter) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.FromContext(ctx).With().
		Str("component", "webview").
		Uint64("webview_id", uint64(wv.id)).
		Logger()

	if wv.destroyed.Load() {
		return fmt.Errorf("webview %d is destroyed", wv.id)
	}
	if injector == nil && router == nil {
		return nil
	}

	if !wv.frontendAttached.CompareAndSwap(false, true) {
		log.Debug().Msg("AttachFrontend: already attached, skipping")
		return nil
	}

	var attachErr error

	defer func() {
		if attachErr != nil {
			// allow retry on next call
			wv.frontendAttached.Store(false)
		}
	}()

	if router != nil {
		if _, err := router.SetupMessageHandler(wv.ucm); err != nil {
			attachErr = fmt.Errorf("setup message router: %w", err)
			log.Warn().Err(err).Msg("failed to attach message router")
			return attachErr
		}
	}

	if injector != nil {
		injector.InjectScripts(ctx, wv.ucm)
		injector.InjectStyles(ctx, wv.ucm)
	}

	log.Debug().Msg("content script attached to webview")
	return nil
}
