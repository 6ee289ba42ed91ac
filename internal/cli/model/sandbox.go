// Package model holds the Bubble Tea models for the terminal UIs.
package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/lasso/internal/activation"
	"github.com/bnema/lasso/internal/cli/styles"
	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/selection"
	"github.com/bnema/lasso/internal/session"
)

// The canvas sits below the title line, inside a one-cell border.
const (
	canvasOffsetX = 1
	canvasOffsetY = 2
)

// tickStep is the virtual-time step per animation tick; activation staggers
// play out against this clock.
const tickStep = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickStep, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// SandboxModel runs the selection kernel against the canned fixture page,
// with the terminal mouse standing in for the pointer.
type SandboxModel struct {
	doc   *fixture.Document
	host  *fixture.Host
	ctrl  *session.Controller
	clock *activation.ManualClock

	policy selection.Policy
	hook   selection.RuleHook

	help  help.Model
	keys  styles.SandboxKeyMap
	theme *styles.Theme

	dragging bool
	width    int
	height   int
	err      error

	// now overrides the controller's time source; nil means wall clock.
	now func() time.Time

	ctx context.Context
}

// NewSandbox builds the sandbox around a fresh fixture page. An optional
// rule hook carries a user rules script into the classifier.
func NewSandbox(ctx context.Context, theme *styles.Theme, policy selection.Policy, hook selection.RuleHook) (SandboxModel, error) {
	m := SandboxModel{
		policy: policy,
		hook:   hook,
		help:   styles.NewStyledHelp(theme),
		keys:   styles.DefaultSandboxKeyMap(),
		theme:  theme,
		width:  canvasCols + 2,
		height: canvasRows + 8,
		ctx:    ctx,
	}
	if err := m.rebuild(); err != nil {
		return SandboxModel{}, err
	}
	return m, nil
}

// rebuild resets the page, the in-memory host, and the controller.
func (m *SandboxModel) rebuild() error {
	m.doc = fixture.Demo()
	m.host = fixture.NewHost(m.doc)
	m.clock = activation.NewManualClock()

	classifier := selection.NewClassifier(m.ctx, m.policy)
	if m.hook != nil {
		classifier.SetRuleHook(m.hook)
	}

	ctrl, err := session.NewController(m.ctx, session.Config{
		Policy:    m.policy,
		Selector:  selection.NewSelector(m.ctx, m.policy, classifier),
		Sequencer: activation.NewSequencer(m.ctx, m.doc, m.clock, m.policy.StaggerInterval),
		Document:  m.doc,
		Overlay:   m.host.Overlay,
		Highlight: m.host.Highlights,
		Notify:    m.host.Toasts,
		Clipboard: m.host.Clipboard,
		Now:       m.now,
	})
	if err != nil {
		return err
	}
	m.ctrl = ctrl
	m.dragging = false
	return nil
}

// Init implements tea.Model.
func (m SandboxModel) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m SandboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.clock.Advance(tickStep)
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Trigger):
			// No key-up events in a terminal: the trigger toggles.
			if m.ctrl.Session().Active() {
				m.ctrl.TriggerReleased(m.ctx)
			} else {
				m.ctrl.TriggerPressed(m.ctx, false, false)
			}

		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.EscapePressed(m.ctx)

		case key.Matches(msg, m.keys.Reset):
			m.err = m.rebuild()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *SandboxModel) handleMouse(msg tea.MouseMsg) {
	x, y := pageAt(msg.X-canvasOffsetX, msg.Y-canvasOffsetY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.dragging = true
		m.ctrl.PointerPressed(m.ctx, x, y)

	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		m.ctrl.PointerMoved(m.ctx, x, y)

	case tea.MouseActionRelease:
		if !m.dragging {
			return
		}
		m.dragging = false
		m.ctrl.PointerReleased(m.ctx, x, y)
	}
}

// View implements tea.Model.
func (m SandboxModel) View() string {
	t := m.theme

	title := lipgloss.JoinHorizontal(
		lipgloss.Left,
		t.Title.Render("Lasso sandbox"),
		"  ",
		m.phaseBadge(),
	)

	cv := newCanvas()
	cv.paintPage(m.doc, m.host.Highlights.Has)
	if m.host.Overlay.Shown() {
		cv.drawOverlay(m.host.Overlay.Rect())
	}

	frame := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border)
	page := frame.Render(cv.render(t))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		page,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m SandboxModel) phaseBadge() string {
	t := m.theme
	phase := m.ctrl.Session().Phase
	if phase == session.PhaseIdle {
		return t.MutedBadge(phase.String())
	}
	return t.AccentBadge(phase.String())
}

func (m SandboxModel) statusView() string {
	t := m.theme

	selected := fmt.Sprintf("selected: %d", m.ctrl.SelectionCount())
	if ids := m.ctrl.SelectedIDs(); len(ids) > 0 {
		selected += "  " + t.Subtle.Render(truncate(strings.Join(ids, " "), 60))
	}

	lines := []string{t.Normal.Render(selected)}

	if toast, _ := m.host.Toasts.Current(); toast != "" {
		lines = append(lines, t.Highlight.Render("◆ "+toast))
	}
	if writes := m.host.Clipboard.Writes(); len(writes) > 0 {
		last := strings.ReplaceAll(writes[len(writes)-1], "\n", " · ")
		lines = append(lines, t.Subtle.Render("clipboard: "+truncate(last, 70)))
	}
	if m.err != nil {
		lines = append(lines, t.ErrorStyle.Render("error: "+m.err.Error()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// Selected exposes the running selection for tests and callers.
func (m SandboxModel) Selected() []string {
	return m.ctrl.SelectedIDs()
}

var _ tea.Model = (*SandboxModel)(nil)
