// Package window provides the GTK window hosting the web view.
package window

import (
	"context"

	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/bnema/lasso/internal/infrastructure/webkit"
	"github.com/bnema/lasso/internal/logging"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	baseTitle     = "Lasso"
)

// MainWindow is the single application window with the web view as its
// only child.
type MainWindow struct {
	window  *gtk.ApplicationWindow
	webView *webkit.WebView
	logger  zerolog.Logger
}

// New creates the main window around an existing web view.
func New(ctx context.Context, app *gtk.Application, wv *webkit.WebView) (*MainWindow, error) {
	log := logging.FromContext(ctx)

	mw := &MainWindow{
		webView: wv,
		logger:  log.With().Str("component", "main-window").Logger(),
	}

	mw.window = gtk.NewApplicationWindow(app)
	if mw.window == nil {
		return nil, ErrWindowCreationFailed
	}

	title := baseTitle
	mw.window.SetTitle(&title)
	mw.window.SetDefaultSize(defaultWidth, defaultHeight)

	view := wv.Widget()
	if view == nil {
		mw.window.Unref()
		return nil, ErrWidgetCreationFailed("webview")
	}
	view.SetHexpand(true)
	view.SetVexpand(true)
	view.SetVisible(true)
	mw.window.SetChild(&view.Widget)

	return mw, nil
}

// Show makes the window visible.
func (mw *MainWindow) Show() {
	mw.window.Present()
}

// Close closes the window.
func (mw *MainWindow) Close() {
	mw.window.Close()
}

// Window returns the underlying GTK window.
func (mw *MainWindow) Window() *gtk.ApplicationWindow {
	return mw.window
}

// SetTitle updates the window title, keeping the application name as a
// suffix. The title is capped at 255 characters for display.
func (mw *MainWindow) SetTitle(title string) {
	if mw.window == nil {
		return
	}
	if title == "" {
		title = baseTitle
	} else {
		title = title + " - " + baseTitle
	}
	const maxTitleLen = 255
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}
	mw.window.SetTitle(&title)
}

// Destroy cleans up window resources. The web view is owned by the
// caller and destroyed separately.
func (mw *MainWindow) Destroy() {
	if mw.window != nil {
		mw.window.Destroy()
		mw.window = nil
	}
}

// WindowError represents a window-related error.
type WindowError struct {
	Message string
}

func (e WindowError) Error() string {
	return e.Message
}

var (
	ErrWindowCreationFailed = WindowError{Message: "failed to create application window"}
)

// ErrWidgetCreationFailed creates an error for widget creation failure.
func ErrWidgetCreationFailed(name string) error {
	return WindowError{Message: "failed to create widget: " + name}
}
