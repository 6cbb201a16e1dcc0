// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-08

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeLineStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// ProgressMsg is one fragment of the current progress line.
type ProgressMsg struct {
	Text string
}

// LineDoneMsg terminates the current progress line.
type LineDoneMsg struct{}

// LogMsg is an out-of-band info or warning message.
type LogMsg struct {
	Warning bool
	Text    string
}

// DoneMsg indicates the migration finished.
type DoneMsg struct {
	Err error
}

// Model for the TUI.
type Model struct {
	spinner  spinner.Model
	title    string
	current  string
	lines    []string
	logs     []string
	issues   int
	warnings int
	quitting bool
	err      error
	msgChan  <-chan tea.Msg
}

// NewModel creates a new TUI model consuming migration progress from msgChan.
func NewModel(title string, msgChan <-chan tea.Msg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		spinner: s,
		title:   title,
		msgChan: msgChan,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		m.current += msg.Text
		return m, m.waitForActivity()

	case LineDoneMsg:
		if m.current != "" {
			m.lines = append(m.lines, m.current)
			m.current = ""
		}
		m.issues++
		return m, m.waitForActivity()

	case LogMsg:
		prefix := "INFO"
		if msg.Warning {
			prefix = "WARNING"
			m.warnings++
		}
		m.logs = append(m.logs, fmt.Sprintf("[%s] %s: %s", time.Now().Format("15:04:05"), prefix, msg.Text))
		return m, m.waitForActivity()

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return DoneMsg{}
		}
		return msg
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
		}
		return doneStyle.Render(fmt.Sprintf("✓ Done. %d issues processed, %d warnings.", m.issues, m.warnings)) + "\n"
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	// Show the last few finished lines above the active one
	start := 0
	if len(m.lines) > 8 {
		start = len(m.lines) - 8
	}
	for _, line := range m.lines[start:] {
		s.WriteString(doneStyle.Render("✓ ") + lineStyle.Render(line) + "\n")
	}

	active := m.current
	if active == "" {
		active = "waiting..."
	}
	s.WriteString(m.spinner.View() + " " + activeLineStyle.Render(active) + "\n")

	s.WriteString("\nLogs:\n")
	// Show last 5 logs
	start = 0
	if len(m.logs) > 5 {
		start = len(m.logs) - 5
	}
	for _, log := range m.logs[start:] {
		s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}
