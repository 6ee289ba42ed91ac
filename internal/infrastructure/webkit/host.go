package webkit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/geometry"
	"github.com/bnema/lasso/internal/logging"
)

// Page serves document snapshots and element activation for one WebView.
// Snapshots arrive with pointer-up events; activation is fire-and-forget
// JavaScript, so failures surface only in logs, never to the kernel.
type Page struct {
	wv *WebView

	mu   sync.Mutex
	snap *port.Snapshot
}

// NewPage creates the document adapter for a WebView.
func NewPage(wv *WebView) *Page {
	return &Page{wv: wv}
}

// StoreSnapshot replaces the cached snapshot. Called by the event bridge
// when a pointer-up event delivers one.
func (p *Page) StoreSnapshot(snap *port.Snapshot) {
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
}

// Snapshot implements port.DocumentView.
func (p *Page) Snapshot(_ context.Context) (*port.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return nil, fmt.Errorf("no snapshot delivered for webview %d", p.wv.ID())
	}
	return p.snap, nil
}

// Focus implements port.Activator.
func (p *Page) Focus(ctx context.Context, elementID string) error {
	p.wv.RunJavaScript(ctx, command("focus", elementID))
	return nil
}

// Click implements port.Activator.
func (p *Page) Click(ctx context.Context, elementID string) error {
	p.wv.RunJavaScript(ctx, command("click", elementID))
	return nil
}

// Overlay drives the in-page capture surface and rubber-band rectangle.
type Overlay struct {
	wv *WebView
}

func NewOverlay(wv *WebView) *Overlay { return &Overlay{wv: wv} }

func (o *Overlay) Show(ctx context.Context) error {
	o.wv.RunJavaScript(ctx, "window.__lasso&&window.__lasso.overlayShow();")
	return nil
}

func (o *Overlay) Update(ctx context.Context, rect geometry.Rect) error {
	o.wv.RunJavaScript(ctx, fmt.Sprintf(
		"window.__lasso&&window.__lasso.overlayUpdate(%g,%g,%g,%g);",
		rect.Left, rect.Top, rect.Right, rect.Bottom))
	return nil
}

func (o *Overlay) Hide(ctx context.Context) error {
	o.wv.RunJavaScript(ctx, "window.__lasso&&window.__lasso.overlayHide();")
	return nil
}

// Highlighter applies and clears selection outlines.
type Highlighter struct {
	wv *WebView
}

func NewHighlighter(wv *WebView) *Highlighter { return &Highlighter{wv: wv} }

func (h *Highlighter) Apply(ctx context.Context, elementIDs []string) error {
	ids, err := json.Marshal(elementIDs)
	if err != nil {
		return fmt.Errorf("marshal highlight ids: %w", err)
	}
	h.wv.RunJavaScript(ctx, fmt.Sprintf("window.__lasso&&window.__lasso.highlight(%s);", ids))
	return nil
}

func (h *Highlighter) Clear(ctx context.Context) error {
	h.wv.RunJavaScript(ctx, "window.__lasso&&window.__lasso.clearHighlights();")
	return nil
}

// Notifier shows the in-page toast.
type Notifier struct {
	wv *WebView
}

func NewNotifier(wv *WebView) *Notifier { return &Notifier{wv: wv} }

func (n *Notifier) Show(ctx context.Context, message string, duration time.Duration) error {
	text, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal toast message: %w", err)
	}
	n.wv.RunJavaScript(ctx, fmt.Sprintf(
		"window.__lasso&&window.__lasso.toast(%s,%d);", text, duration.Milliseconds()))
	return nil
}

// command renders a single-argument __lasso call with a JSON-safe id.
func command(name, elementID string) string {
	id, err := json.Marshal(elementID)
	if err != nil {
		id = []byte(`""`)
	}
	return fmt.Sprintf("window.__lasso&&window.__lasso.%s(%s);", name, id)
}

// Host bundles the per-WebView adapters behind the application ports.
type Host struct {
	Page       *Page
	Overlay    *Overlay
	Highlights *Highlighter
	Toasts     *Notifier
}

// NewHost builds the adapter set for one WebView.
func NewHost(ctx context.Context, wv *WebView) *Host {
	logging.FromContext(ctx).Debug().
		Uint64("webview_id", uint64(wv.ID())).
		Msg("page host adapters created")

	return &Host{
		Page:       NewPage(wv),
		Overlay:    NewOverlay(wv),
		Highlights: NewHighlighter(wv),
		Toasts:     NewNotifier(wv),
	}
}
