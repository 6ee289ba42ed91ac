package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/spf13/cobra"

	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/selection"
	"github.com/bnema/lasso/internal/selection/scripted"
)

const rulesTableMaxHeight = 20

var rulesChangedOnly bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with selection rule scripts",
	Long:  `Check rule scripts against the built-in page before pointing the browser host at them.`,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <script.js>",
	Short: "Run a rule script against the built-in page",
	Long: `Compile a rule script and evaluate it for every element of the built-in
demonstration page, next to the built-in verdict it would override.

The script must define a function significant(element, builtin) that
returns true or false.

Examples:
  lasso rules check rules.js            # All elements
  lasso rules check rules.js --changed  # Only overridden verdicts`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesCheck,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesCheckCmd)

	rulesCheckCmd.Flags().BoolVar(&rulesChangedOnly, "changed", false, "only show elements whose verdict the script changed")
}

func runRulesCheck(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	engine, err := scripted.LoadFile(app.Ctx(), args[0])
	if err != nil {
		return fmt.Errorf("load rules script: %w", err)
	}

	policy := app.Config.SelectionPolicy()
	builtin := selection.NewClassifier(app.Ctx(), policy)
	hooked := selection.NewClassifier(app.Ctx(), policy)
	hooked.SetRuleHook(engine.Hook())

	doc := fixture.Demo()

	var rows []table.Row
	total, changed := 0, 0
	for _, el := range doc.Elements() {
		b := builtin.Significant(el)
		s := hooked.Significant(el)
		total++
		if b != s {
			changed++
		}
		if rulesChangedOnly && b == s {
			continue
		}
		rows = append(rows, styles.RuleCheckRow{ID: el.ID(), Tag: el.Tag(), Builtin: b, Script: s}.ToRow())
	}

	if len(rows) == 0 {
		fmt.Println(app.Theme.Subtle.Render("script changed no verdicts"))
		return nil
	}

	height := len(rows)
	if height > rulesTableMaxHeight {
		height = rulesTableMaxHeight
	}
	tbl := styles.NewStyledTable(app.Theme, styles.RuleCheckColumns(), rows, 62, height)
	fmt.Println(tbl.View())
	fmt.Println(app.Theme.Subtle.Render(fmt.Sprintf("%d of %d verdicts changed", changed, total)))
	return nil
}
