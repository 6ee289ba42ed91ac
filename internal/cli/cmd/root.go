// Package cmd provides Cobra CLI commands for lasso.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/lasso/internal/build"
	"github.com/bnema/lasso/internal/cli"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "lasso",
		Short: "Drag a rectangle over a page, act on everything inside it",
		Long: `Lasso - rectangle selection and batch activation for web pages.

Hold a trigger key, drag a rectangle, and every interactable element
inside it gets highlighted, copied, and activated in order.

Features:
  - Hold-to-arm trigger key with double-tap clear
  - Overlap-based element selection with nested-element dedup
  - User-scriptable selection rules (JavaScript)
  - Staggered batch activation of links, buttons, and inputs
  - Clipboard export of the selected elements
  - Terminal sandbox for trying rules without a browser

Use 'lasso run' to launch the graphical host, or 'lasso sandbox' to
drive the selection engine against a built-in page in your terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// runCmd is a placeholder for help - actual execution is in main.go
var runCmd = &cobra.Command{
	Use:   "run [url]",
	Short: "Launch the graphical host",
	Long: `Launch the GTK4 host window with the selection tool attached.

If a URL is provided, navigate to it. Otherwise, open the built-in
demonstration page.

Examples:
  lasso run                  # Open the demo page
  lasso run example.com      # Open a URL`,
	Run: func(_ *cobra.Command, _ []string) {
		// This is handled by main.go before cobra runs
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
