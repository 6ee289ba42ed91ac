// Package ui assembles the GTK application: one window, one web view,
// and the selection kernel bridged to the page.
package ui

import (
	"context"
	"errors"

	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/bnema/lasso/assets"
	"github.com/bnema/lasso/internal/activation"
	"github.com/bnema/lasso/internal/application/port"
	"github.com/bnema/lasso/internal/config"
	"github.com/bnema/lasso/internal/infrastructure/clipboard"
	"github.com/bnema/lasso/internal/infrastructure/webkit"
	"github.com/bnema/lasso/internal/logging"
	"github.com/bnema/lasso/internal/selection"
	"github.com/bnema/lasso/internal/selection/scripted"
	"github.com/bnema/lasso/internal/session"
	"github.com/bnema/lasso/internal/ui/mainloop"
	"github.com/bnema/lasso/internal/ui/window"
)

// App owns the GTK application lifecycle.
type App struct {
	cfg       *config.Config
	targetURL string

	gtkApp    *gtk.Application
	webView   *webkit.WebView
	window    *window.MainWindow
	ctrl      *session.Controller
	coalescer *mainloop.Coalescer

	cancel context.CancelCauseFunc
}

// New creates an App. An empty targetURL loads the built-in demo page.
func New(cfg *config.Config, targetURL string) *App {
	return &App{
		cfg:       cfg,
		targetURL: targetURL,
	}
}

// Run starts the GTK application and blocks until it exits. Returns the
// exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	log := logging.FromContext(ctx)

	ctx, cancel := context.WithCancelCause(ctx)
	a.cancel = cancel

	a.gtkApp = gtk.NewApplication(nil, gio.GApplicationFlagsNoneValue)
	if a.gtkApp == nil {
		log.Error().Msg("failed to create GTK application")
		return 1
	}
	defer a.gtkApp.Unref()

	activateCb := func(_ gio.Application) {
		a.onActivate(ctx)
	}
	a.gtkApp.ConnectActivate(&activateCb)

	shutdownCb := func(_ gio.Application) {
		a.onShutdown(ctx)
	}
	a.gtkApp.ConnectShutdown(&shutdownCb)

	log.Info().Msg("starting GTK main loop")
	return a.gtkApp.Run(len(args), args)
}

// Quit requests the application to quit.
func (a *App) Quit() {
	if a.gtkApp != nil {
		a.gtkApp.Quit()
	}
}

func (a *App) onActivate(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application activated")

	wv, err := webkit.NewWebView(*log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create webview")
		a.Quit()
		return
	}
	a.webView = wv
	logging.Trace().Mark("webview_created")

	router, err := a.attachKernel(ctx, wv)
	if err != nil {
		log.Error().Err(err).Msg("failed to assemble selection kernel")
		wv.Destroy()
		a.Quit()
		return
	}
	logging.Trace().Mark("kernel_attached")

	injector := webkit.NewContentInjector(webkit.InjectorConfig{
		TriggerKey:     a.cfg.Input.TriggerKey,
		HighlightColor: a.cfg.Feedback.HighlightColor,
		OverlayColor:   a.cfg.Feedback.OverlayColor,
	})
	if err := wv.AttachFrontend(ctx, injector, router); err != nil {
		log.Error().Err(err).Msg("failed to attach frontend")
		wv.Destroy()
		a.Quit()
		return
	}

	win, err := window.New(ctx, a.gtkApp, wv)
	if err != nil {
		log.Error().Err(err).Msg("failed to create main window")
		wv.Destroy()
		a.Quit()
		return
	}
	a.window = win

	wv.OnLoadChanged = func(ev webkit.LoadEvent) {
		if ev == webkit.LoadFinished {
			win.SetTitle(wv.Title())
		}
	}

	a.loadTarget(ctx)
	win.Show()
	logging.Trace().Finish()
}

// attachKernel wires the selection kernel around the web view and returns
// the message router carrying page events into it.
func (a *App) attachKernel(ctx context.Context, wv *webkit.WebView) (*webkit.MessageRouter, error) {
	log := logging.FromContext(ctx)

	policy := a.cfg.SelectionPolicy()
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	classifier := selection.NewClassifier(ctx, policy)
	a.installRulesScript(ctx, classifier, a.cfg.Selection.RulesScript)

	host := webkit.NewHost(ctx, wv)
	ctrl, err := session.NewController(ctx, session.Config{
		Policy:    policy,
		Selector:  selection.NewSelector(ctx, policy, classifier),
		Sequencer: activation.NewSequencer(ctx, host.Page, activation.SystemClock(), policy.StaggerInterval),
		Document:  host.Page,
		Overlay:   host.Overlay,
		Highlight: host.Highlights,
		Notify:    host.Toasts,
		Clipboard: a.clipboardPort(),
	})
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl

	router := webkit.NewMessageRouter(ctx)
	bridge := webkit.NewEventBridge(ctx, host.Page, ctrl, a.cfg.Input.TriggerKey)
	if err := bridge.Register(router); err != nil {
		return nil, err
	}

	a.watchPolicy(ctx, host, ctrl)

	log.Debug().
		Str("trigger_key", a.cfg.Input.TriggerKey).
		Msg("selection kernel attached")
	return router, nil
}

// watchPolicy hot-reloads the selection policy on config file changes.
// Reload callbacks arrive on the watcher goroutine, so the rebuilt
// collaborators hop to the GTK main loop before touching the controller.
// Trigger key and injected colors stay fixed until restart; the content
// script already carries them.
func (a *App) watchPolicy(ctx context.Context, host *webkit.Host, ctrl *session.Controller) {
	log := logging.FromContext(ctx)

	if err := config.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable, policy hot reload disabled")
		return
	}

	a.coalescer = mainloop.NewCoalescer(postToMainLoop)
	config.OnChange(func(cfg *config.Config) {
		policy := cfg.SelectionPolicy()
		if err := policy.Validate(); err != nil {
			log.Warn().Err(err).Msg("reloaded policy rejected, keeping previous")
			return
		}

		classifier := selection.NewClassifier(ctx, policy)
		a.installRulesScript(ctx, classifier, cfg.Selection.RulesScript)
		selector := selection.NewSelector(ctx, policy, classifier)
		sequencer := activation.NewSequencer(ctx, host.Page, activation.SystemClock(), policy.StaggerInterval)

		a.coalescer.Post("policy-reload", func() {
			if err := ctrl.ApplyPolicy(policy, selector, sequencer); err != nil {
				log.Warn().Err(err).Msg("policy swap rejected")
				return
			}
			log.Info().Msg("selection policy reloaded")
		})
	})
}

// postToMainLoop hands fn to the GTK main loop.
func postToMainLoop(fn func()) {
	cb := glib.SourceFunc(func(_ uintptr) bool {
		fn()
		return false
	})
	glib.IdleAdd(&cb, 0)
}

// installRulesScript loads the user's significance rules, when configured.
// A broken script logs a warning and leaves the built-in rules in charge.
func (a *App) installRulesScript(ctx context.Context, classifier *selection.Classifier, scriptPath string) {
	log := logging.FromContext(ctx)

	path, err := config.ResolveRulesScript(scriptPath)
	if err != nil {
		log.Warn().Err(err).Msg("rules script path unresolved, using built-in rules")
		return
	}
	if path == "" {
		return
	}

	engine, err := scripted.LoadFile(ctx, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("rules script rejected, using built-in rules")
		return
	}
	classifier.SetRuleHook(engine.Hook())
	log.Info().Str("path", path).Msg("rules script installed")
}

// clipboardPort picks the system clipboard adapter, or a silent drop when
// copy-on-select is turned off.
func (a *App) clipboardPort() port.Clipboard {
	if !a.cfg.Feedback.CopyToClipboard {
		return clipboard.Disabled()
	}
	return clipboard.New()
}

func (a *App) loadTarget(ctx context.Context) {
	log := logging.FromContext(ctx)

	if a.targetURL == "" {
		log.Info().Msg("no target URL, loading demo page")
		if err := a.webView.LoadHTML(ctx, assets.DemoPage, ""); err != nil {
			log.Error().Err(err).Msg("failed to load demo page")
		}
		return
	}
	if err := a.webView.LoadURI(ctx, a.targetURL); err != nil {
		log.Error().Err(err).Str("url", a.targetURL).Msg("failed to load target")
	}
}

func (a *App) onShutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application shutting down")

	a.cancel(errors.New("application shutdown"))

	if a.coalescer != nil {
		a.coalescer.Close()
		a.coalescer = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
	if a.webView != nil {
		a.webView.Destroy()
		a.webView = nil
	}

	log.Info().Msg("application shutdown complete")
}
