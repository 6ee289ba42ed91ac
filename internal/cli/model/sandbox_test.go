package model

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/selection"
	"github.com/bnema/lasso/internal/session"
)

// newTestSandbox builds a model on a stepped clock so the tests control
// the double-press window instead of racing the wall clock.
func newTestSandbox(t *testing.T) (SandboxModel, *time.Time) {
	t.Helper()
	m, err := NewSandbox(context.Background(), styles.NewTheme(nil), selection.DefaultPolicy(), nil)
	require.NoError(t, err)

	wall := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return wall }
	require.NoError(t, m.rebuild())
	return m, &wall
}

func update(t *testing.T, m SandboxModel, msg tea.Msg) SandboxModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(SandboxModel)
	require.True(t, ok)
	return out
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// dragButtons sweeps the mouse over both hero call-to-action buttons.
// Screen coordinates include the title line and the canvas border.
func dragButtons(t *testing.T, m SandboxModel, wall *time.Time) SandboxModel {
	t.Helper()
	*wall = wall.Add(time.Second)
	m = update(t, m, keyPress('a'))
	m = update(t, m, tea.MouseMsg{X: 4, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 20, Y: 11, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 31, Y: 11, Action: tea.MouseActionRelease})
	return m
}

func TestSandbox_DragSelectsAndActivates(t *testing.T) {
	m, wall := newTestSandbox(t)

	m = dragButtons(t, m, wall)

	assert.Equal(t, []string{"cta-start", "cta-more"}, m.Selected())
	assert.Equal(t, session.PhaseIdle, m.ctrl.Session().Phase)
	assert.False(t, m.host.Overlay.Shown())

	toast, _ := m.host.Toasts.Current()
	assert.Equal(t, "2 elements selected", toast)
	assert.Equal(t, []string{"Get started\nLearn more"}, m.host.Clipboard.Writes())

	// Two animation ticks cover the whole 100ms stagger.
	m = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, 1, m.doc.Element("cta-start").Clicks())
	assert.Equal(t, 0, m.doc.Element("cta-more").Clicks())

	m = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, 1, m.doc.Element("cta-more").Clicks())
	assert.Equal(t, 1, m.doc.Element("cta-more").Focuses())
}

func TestSandbox_TriggerToggles(t *testing.T) {
	m, _ := newTestSandbox(t)

	m = update(t, m, keyPress('a'))
	assert.Equal(t, session.PhaseAwaitingDrag, m.ctrl.Session().Phase)
	assert.True(t, m.host.Overlay.Shown())

	m = update(t, m, keyPress('a'))
	assert.Equal(t, session.PhaseIdle, m.ctrl.Session().Phase)
	assert.False(t, m.host.Overlay.Shown())
}

func TestSandbox_TripleTapClearsSelection(t *testing.T) {
	m, wall := newTestSandbox(t)

	m = dragButtons(t, m, wall)
	require.Len(t, m.Selected(), 2)

	// arm, release, press again inside the double-press window
	*wall = wall.Add(time.Second)
	m = update(t, m, keyPress('a'))
	m = update(t, m, keyPress('a'))
	m = update(t, m, keyPress('a'))

	assert.Empty(t, m.Selected())
	assert.Empty(t, m.host.Highlights.Highlighted())

	toast, _ := m.host.Toasts.Current()
	assert.Equal(t, "Selection cleared", toast)
}

func TestSandbox_EscapeCancelsMidDrag(t *testing.T) {
	m, _ := newTestSandbox(t)

	m = update(t, m, keyPress('a'))
	m = update(t, m, tea.MouseMsg{X: 4, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, session.PhaseIdle, m.ctrl.Session().Phase)
	assert.Empty(t, m.Selected())

	// The stale mouse release is a no-op once the session is gone.
	m = update(t, m, tea.MouseMsg{X: 31, Y: 11, Action: tea.MouseActionRelease})
	assert.Empty(t, m.Selected())
}

func TestSandbox_ResetRestoresPage(t *testing.T) {
	m, wall := newTestSandbox(t)

	m = dragButtons(t, m, wall)
	m = update(t, m, tickMsg(time.Now()))
	require.Equal(t, 1, m.doc.Element("cta-start").Clicks())

	m = update(t, m, keyPress('r'))

	assert.NoError(t, m.err)
	assert.Empty(t, m.Selected())
	assert.Equal(t, 0, m.doc.Element("cta-start").Clicks())
}

func TestSandbox_ViewShowsSelectionState(t *testing.T) {
	m, wall := newTestSandbox(t)
	m = dragButtons(t, m, wall)

	view := m.View()
	assert.Contains(t, view, "selected: 2")
	assert.Contains(t, view, "2 elements selected")
	assert.Contains(t, view, "Get starte")
}
