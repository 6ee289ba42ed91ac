package fixture

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/lasso/internal/geometry"
)

// Overlay is an in-memory capture surface.
type Overlay struct {
	mu    sync.Mutex
	shown bool
	rect  geometry.Rect
	shows int
}

func NewOverlay() *Overlay { return &Overlay{} }

func (o *Overlay) Show(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shown = true
	o.rect = geometry.Rect{}
	o.shows++
	return nil
}

func (o *Overlay) Update(_ context.Context, rect geometry.Rect) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rect = rect
	return nil
}

func (o *Overlay) Hide(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shown = false
	return nil
}

// Shown reports whether the surface is currently up.
func (o *Overlay) Shown() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shown
}

// Rect returns the current rectangle visual.
func (o *Overlay) Rect() geometry.Rect {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rect
}

// ShowCount returns how many times the surface was installed.
func (o *Overlay) ShowCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shows
}

// Highlighter records applied outlines.
type Highlighter struct {
	mu      sync.Mutex
	applied map[string]struct{}
	order   []string
}

func NewHighlighter() *Highlighter {
	return &Highlighter{applied: make(map[string]struct{})}
}

func (h *Highlighter) Apply(_ context.Context, elementIDs []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range elementIDs {
		if _, ok := h.applied[id]; ok {
			continue
		}
		h.applied[id] = struct{}{}
		h.order = append(h.order, id)
	}
	return nil
}

func (h *Highlighter) Clear(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applied = make(map[string]struct{})
	h.order = nil
	return nil
}

// Highlighted returns the outlined element IDs in application order.
func (h *Highlighter) Highlighted() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Has reports whether the element is currently outlined.
func (h *Highlighter) Has(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.applied[id]
	return ok
}

// Notifier records toasts; the newest replaces the visible one.
type Notifier struct {
	mu       sync.Mutex
	current  string
	duration time.Duration
	history  []string
}

func NewNotifier() *Notifier { return &Notifier{} }

func (n *Notifier) Show(_ context.Context, message string, duration time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = message
	n.duration = duration
	n.history = append(n.history, message)
	return nil
}

// Current returns the visible toast message and its duration.
func (n *Notifier) Current() (string, time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.duration
}

// History returns every shown message, oldest first.
func (n *Notifier) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.history))
	copy(out, n.history)
	return out
}

// Clipboard records writes and can be made to fail.
type Clipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func NewClipboard() *Clipboard { return &Clipboard{} }

func (c *Clipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

// FailWith makes subsequent writes return err; nil restores success.
func (c *Clipboard) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Writes returns every successful write, oldest first.
func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.writes))
	copy(out, c.writes)
	return out
}

// Host bundles one fixture document with in-memory collaborators, wired
// the way a real host would wire its adapters.
type Host struct {
	Doc        *Document
	Overlay    *Overlay
	Highlights *Highlighter
	Toasts     *Notifier
	Clipboard  *Clipboard
}

// NewHost builds a complete in-memory host around the document.
func NewHost(doc *Document) *Host {
	return &Host{
		Doc:        doc,
		Overlay:    NewOverlay(),
		Highlights: NewHighlighter(),
		Toasts:     NewNotifier(),
		Clipboard:  NewClipboard(),
	}
}
