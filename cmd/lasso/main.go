package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/bnema/lasso/internal/build"
	"github.com/bnema/lasso/internal/cli/cmd"
	"github.com/bnema/lasso/internal/config"
	"github.com/bnema/lasso/internal/logging"
	"github.com/bnema/lasso/internal/ui"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// initialURL holds the URL to open on startup (from run command).
var initialURL string

func main() {
	enableCrashForensics()

	// Run GUI mode for run command
	if len(os.Args) > 1 && os.Args[1] == "run" {
		if len(os.Args) > 2 {
			initialURL = os.Args[2]
		}
		os.Args = os.Args[:1]
		os.Exit(runGUI())
		return
	}

	// Pass build info to CLI
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})

	// Default: run CLI (shows help if no subcommand)
	cmd.Execute()
}

func runGUI() int {
	// GTK wants the main loop on the thread that created it.
	runtime.LockOSThread()

	cfg := initConfig()
	logging.InitStartupTrace(cfg.Logging.Level)
	logging.Trace().Mark("config_loaded")

	ctx := initStartupContext(cfg)
	logging.Trace().SetLogger(logging.FromContext(ctx))
	logging.Trace().Mark("logger_init")
	logCoreDumpLimits(ctx)

	// Route GTK/WebKit messages into zerolog before GTK comes up.
	debugLogs := cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace"
	logging.InstallGLibLogHandler(ctx, *logging.FromContext(ctx), debugLogs)

	app := ui.New(cfg, initialURL)
	setupSignalHandler(ctx, app)

	return app.Run(ctx, os.Args)
}

func initConfig() *config.Config {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	return config.Get()
}

func initStartupContext(cfg *config.Config) context.Context {
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting lasso")
	return logging.WithContext(context.Background(), logger)
}

func setupSignalHandler(ctx context.Context, app *ui.App) {
	log := logging.FromContext(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
		app.Quit()
	}()
}
