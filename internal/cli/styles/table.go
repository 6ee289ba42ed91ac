package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// RuleCheckColumns returns columns for the rules-check verdict table.
func RuleCheckColumns() []table.Column {
	return []table.Column{
		{Title: "Element", Width: 18},
		{Title: "Tag", Width: 8},
		{Title: "Built-in", Width: 10},
		{Title: "Script", Width: 10},
		{Title: "Changed", Width: 9},
	}
}

// RuleCheckRow is one element's verdict pair for the rules-check table.
type RuleCheckRow struct {
	ID      string
	Tag     string
	Builtin bool
	Script  bool
}

// ToRow converts to table.Row.
func (r RuleCheckRow) ToRow() table.Row {
	changed := ""
	if r.Builtin != r.Script {
		changed = "←"
	}
	return table.Row{r.ID, r.Tag, yesNo(r.Builtin), yesNo(r.Script), changed}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
