package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/lasso/internal/cli"
	"github.com/bnema/lasso/internal/cli/model"
	"github.com/bnema/lasso/internal/config"
	"github.com/bnema/lasso/internal/selection"
	"github.com/bnema/lasso/internal/selection/scripted"
)

var sandboxRules string

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Drive the selection engine in your terminal",
	Long: `Run the selection engine against a built-in page rendered in the
terminal. Useful for tuning selection settings and rule scripts without
launching a browser window.

Terminals deliver no key-up events, so the trigger key toggles instead
of being held: press 'a' to arm, drag with the mouse, press 'a' again
to release early.`,
	RunE: runSandbox,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)

	sandboxCmd.Flags().StringVar(&sandboxRules, "rules", "", "rule script to load (overrides config)")
}

func runSandbox(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	policy := app.Config.SelectionPolicy()

	hook, err := loadRuleHook(app)
	if err != nil {
		return err
	}

	m, err := model.NewSandbox(app.Ctx(), app.Theme, policy, hook)
	if err != nil {
		return fmt.Errorf("build sandbox: %w", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// loadRuleHook compiles the configured rule script, if any. The --rules
// flag takes precedence over the config file setting.
func loadRuleHook(app *cli.App) (selection.RuleHook, error) {
	script := sandboxRules
	if script == "" {
		script = app.Config.Selection.RulesScript
	}

	path, err := config.ResolveRulesScript(script)
	if err != nil {
		return nil, fmt.Errorf("resolve rules script: %w", err)
	}
	if path == "" {
		return nil, nil
	}

	engine, err := scripted.LoadFile(app.Ctx(), path)
	if err != nil {
		return nil, fmt.Errorf("load rules script: %w", err)
	}
	return engine.Hook(), nil
}
