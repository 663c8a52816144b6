// Package ui renders the command palette as a Bubble Tea program.
//
// The model owns a [palette.Controller] and funnels every executor event back
// into it on the Bubble Tea update loop, which is the palette's single
// controlling thread.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"

	"github.com/cataplot/palette/pkg/config"
	"github.com/cataplot/palette/pkg/keys"
	"github.com/cataplot/palette/pkg/palette"
)

// EventMsg wraps an executor notification for delivery via [tea.Program.Send].
type EventMsg struct {
	Event palette.Event
}

// Model is the palette TUI model.
type Model struct {
	ctrl     *palette.Controller
	keyBinds *config.KeyBinds
	styles   Styles
	input    textinput.Model
	spinner  spinner.Model
	width    int
	height   int
	fatalErr error
	lastErr  error
}

// ModelOpt configures a [Model].
type ModelOpt func(m *Model)

// WithStyles overrides the default styling.
func WithStyles(s Styles) ModelOpt {
	return func(m *Model) {
		m.styles = s
	}
}

// NewModel creates a palette [Model] over the given controller.
func NewModel(ctrl *palette.Controller, kb *config.KeyBinds, opts ...ModelOpt) Model {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Line

	m := Model{
		ctrl:     ctrl,
		keyBinds: kb,
		styles:   DefaultStyles(),
		input:    ti,
		spinner:  sp,
	}
	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// FatalErr returns the error that terminated the program, if any. A fatal
// error means the palette's internal invariants were violated, e.g. a menu
// item resolved to no registered command.
func (m Model) FatalErr() error {
	return m.fatalErr
}

// Init implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State() != palette.StateRunning {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case EventMsg:
		m.ctrl.HandleEvent(msg.Event)

		return m, nil

	case errorMsg:
		m.lastErr = msg.err

		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.keyBinds.Quit.Match(key) {
		return m, tea.Quit
	}

	if !m.ctrl.IsVisible() {
		if m.keyBinds.Show.Match(key) {
			m.ctrl.Show()
			m.input.Reset()
			m.lastErr = nil

			return m, m.input.Focus()
		}

		return m, nil
	}

	switch {
	case m.keyBinds.Escape.Match(key):
		m.ctrl.Hide()
		m.input.Reset()
		m.input.Blur()

		return m, nil

	case m.keyBinds.Up.Match(key):
		m.ctrl.MoveSelection(-1)

		return m, nil

	case m.keyBinds.Down.Match(key):
		m.ctrl.MoveSelection(1)

		return m, nil

	case m.keyBinds.Select.Match(key):
		item, ok := m.ctrl.SelectedItem()
		if !ok {
			return m, nil
		}

		err := m.ctrl.Choose(item)
		if err != nil {
			m.fatalErr = fmt.Errorf("choose %q: %w", item, err)

			return m, tea.Quit
		}

		m.input.Reset()

		return m, m.spinner.Tick

	case m.keyBinds.Back.Match(key) && m.input.Value() == "":
		// Backspace on an empty query pops a breadcrumb level. With text in
		// the query it falls through to the input and deletes a character.
		m.ctrl.GoBack()

		if m.ctrl.State() == palette.StateRunning {
			return m, m.spinner.Tick
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())

	return m, cmd
}

// View implements [tea.Model].
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("palette"))
	b.WriteString("\n\n")

	if !m.ctrl.IsVisible() {
		if m.lastErr != nil {
			b.WriteString(m.styles.Error.Render("error: " + m.lastErr.Error()))
			b.WriteString("\n\n")
		}

		b.WriteString(m.styles.Subtle.Render(
			fmt.Sprintf("press %s to open the command palette", m.keyBinds.Show.String())))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Subtle.Render(m.bindingTable()))
		b.WriteString("\n")

		return b.String()
	}

	b.WriteString(m.styles.Prompt.Render(m.input.View()))
	b.WriteString("\n")

	if label := m.ctrl.BreadcrumbLabel(); label != "" {
		b.WriteString(m.styles.Breadcrumb.Render(label))

		if m.ctrl.State() == palette.StateRunning {
			b.WriteString(" " + m.spinner.View())
		}

		b.WriteString("\n")
	}

	b.WriteString("\n")

	if m.ctrl.State() != palette.StateRunning {
		items := m.ctrl.CurrentItems()
		if len(items) == 0 {
			b.WriteString(m.styles.Subtle.Render("  no matches"))
			b.WriteString("\n")
		}

		for i, item := range items {
			if i == m.ctrl.SelectedIndex() {
				b.WriteString(m.styles.Selected.Render(item))
			} else {
				b.WriteString(m.styles.Item.Render(item))
			}

			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render(m.helpLine()))
	b.WriteString("\n")

	return b.String()
}

func (m Model) helpLine() string {
	kb := m.keyBinds

	return keys.Render(*kb.Up, *kb.Down, *kb.Select, *kb.Back, *kb.Escape, *kb.Quit)
}

// bindingTable lists every binding on its own line with the descriptions
// aligned into a column, for the hidden screen.
func (m Model) bindingTable() string {
	kbs := m.keyBinds.GetKeyBinds()

	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.PrintableRuneWidth(kb.String()))
	}

	rows := make([]string, 0, len(kbs))
	for _, kb := range kbs {
		if row := kb.StringRow(keyWidth, 0); row != "" {
			rows = append(rows, row)
		}
	}

	return strings.Join(rows, "\n")
}

type errorMsg struct {
	err error
}

// ErrorMsg wraps a work failure for display on the hidden screen. The
// application's error reporter sends one via [tea.Program.Send].
func ErrorMsg(err error) tea.Msg {
	return errorMsg{err: err}
}

// NewProgram creates the Bubble Tea program for the palette.
func NewProgram(ctrl *palette.Controller, cfg *config.Config, opts ...ModelOpt) *tea.Program {
	return tea.NewProgram(
		NewModel(ctrl, cfg.KeyBinds, opts...),
		tea.WithAltScreen(),
	)
}
