package webkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/puregotk-webkit/webkit"

	"github.com/bnema/lasso/assets"
	"github.com/bnema/lasso/internal/logging"
)

// InjectorConfig is the page-side configuration handed to the content
// script before it runs.
type InjectorConfig struct {
	TriggerKey     string `json:"triggerKey"`
	HighlightColor string `json:"highlightColor"`
	OverlayColor   string `json:"overlayColor"`
}

// ContentInjector installs the lasso content script and its styles into
// WebViews.
type ContentInjector struct {
	cfg InjectorConfig
}

// NewContentInjector creates a new injector instance.
func NewContentInjector(cfg InjectorConfig) *ContentInjector {
	return &ContentInjector{cfg: cfg}
}

// InjectScripts adds the config prelude and the content script to the
// given content manager. Scripts run at document start in add order, top
// frame only.
func (ci *ContentInjector) InjectScripts(ctx context.Context, ucm *webkit.UserContentManager) {
	log := logging.FromContext(ctx).With().Str("component", "content-injector").Logger()

	if ucm == nil {
		log.Warn().Msg("cannot inject scripts: user content manager is nil")
		return
	}

	addScript := func(source, label string) {
		script := webkit.NewUserScript(
			source,
			webkit.UserContentInjectTopFrameValue,
			webkit.UserScriptInjectAtDocumentStartValue,
			nil,
			nil,
		)
		if script == nil {
			log.Warn().Str("script", label).Msg("failed to create user script")
			return
		}
		ucm.AddScript(script)
		log.Debug().Str("script", label).Msg("injected user script")
	}

	cfgJSON, err := json.Marshal(ci.cfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal injector config")
		cfgJSON = []byte("{}")
	}
	addScript(fmt.Sprintf("window.__lassoConfig=%s;", cfgJSON), "lasso-config")
	addScript(assets.LassoScript, "lasso")
}

// InjectStyles adds the overlay/highlight/toast stylesheet.
func (ci *ContentInjector) InjectStyles(ctx context.Context, ucm *webkit.UserContentManager) {
	log := logging.FromContext(ctx).With().Str("component", "content-injector").Logger()

	if ucm == nil {
		log.Warn().Msg("cannot inject styles: user content manager is nil")
		return
	}

	stylesheet := webkit.NewUserStyleSheet(
		assets.LassoStyles,
		webkit.UserContentInjectTopFrameValue,
		webkit.UserStyleLevelUserValue,
		nil,
		nil,
	)
	if stylesheet == nil {
		log.Warn().Msg("failed to create lasso stylesheet")
		return
	}
	ucm.AddStyleSheet(stylesheet)
	log.Debug().Msg("lasso stylesheet injected")
}
