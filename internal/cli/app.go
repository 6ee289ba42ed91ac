// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"os"

	"github.com/bnema/lasso/internal/build"
	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/config"
	"github.com/bnema/lasso/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	// Load config
	cfg := loadConfig()

	// Create theme from config
	theme := styles.NewTheme(cfg)

	// CLI output goes through lipgloss; keep the logger quiet unless asked.
	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("LASSO_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	return &App{
		Config: cfg,
		Theme:  theme,
		ctx:    ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations.
func loadConfig() *config.Config {
	mgr, err := config.NewManager()
	if err != nil {
		// Return default config if manager fails
		return config.DefaultConfig()
	}

	if err := mgr.Load(); err != nil {
		// Return default config if loading fails
		return config.DefaultConfig()
	}

	return mgr.Get()
}
