// Package tui shows a running build as a Bubble Tea spinner with a short
// log of progress events.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/maplebgm-data/internal/build"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF9F1C")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// ErrCancelled is returned when the user stops the build from the keyboard.
var ErrCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateBuilding State = iota
	StateCancelling
	StateComplete
	StateError
)

// RunFunc performs a build, reporting progress through onProgress.
type RunFunc func(ctx context.Context, onProgress func(build.ProgressEvent)) (*build.Summary, error)

// Message types
type (
	// ProgressMsg carries one build progress event.
	ProgressMsg struct {
		Event build.ProgressEvent
	}

	// DoneMsg is sent when the build returns.
	DoneMsg struct {
		Summary *build.Summary
		Err     error
	}
)

// Model is the Bubble Tea model for the build spinner.
type Model struct {
	state   State
	spinner spinner.Model
	logs    []build.ProgressEvent
	verbose bool

	summary *build.Summary
	err     error

	cancel context.CancelFunc
}

// NewModel creates a model. cancel is called when the user presses ctrl+c.
func NewModel(cancel context.CancelFunc, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9F1C"))

	return Model{
		state:   StateBuilding,
		spinner: sp,
		verbose: verbose,
		cancel:  cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.state == StateBuilding {
				m.state = StateCancelling
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Event.Level == build.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, msg.Event)
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}
		return m, nil

	case DoneMsg:
		switch {
		case m.state == StateCancelling:
			m.state = StateError
			m.err = ErrCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.summary = msg.Summary
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ maplebgm-data"))
	b.WriteString("\n")

	switch m.state {
	case StateBuilding:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Building dataset..."))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("ctrl+c: cancel"))
	case StateCancelling:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(warningStyle.Render("Cancelling..."))
		b.WriteString("\n")
	case StateComplete:
		b.WriteString(m.renderLogs())
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.renderLogs())
		b.WriteString(errorStyle.Render("✗ Build failed:"))
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	if m.summary == nil {
		return successStyle.Render("✓ Build complete")
	}
	return boxStyle.Render(fmt.Sprintf(
		"✓ Build complete\n\n"+
			"Tracks: %d (%d downloadable)\n"+
			"Maps: %d assigned, %d orphaned\n"+
			"Output: %s",
		m.summary.Tracks, m.summary.Downloadable,
		m.summary.AssignedMaps, len(m.summary.Orphans),
		m.summary.OutputPath,
	))
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, e := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch e.Level {
		case build.LevelError:
			style = errorStyle
			prefix = "✗"
		case build.LevelWarning:
			style = warningStyle
			prefix = "!"
		case build.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case build.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + e.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Result returns the outcome once the build has finished.
func (m Model) Result() (*build.Summary, error) {
	return m.summary, m.err
}

// Run shows the spinner while run executes and returns its result.
func Run(ctx context.Context, run RunFunc, verbose bool) (*build.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(cancel, verbose))
	go func() {
		summary, err := run(ctx, func(e build.ProgressEvent) {
			p.Send(ProgressMsg{Event: e})
		})
		p.Send(DoneMsg{Summary: summary, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model %T", final)
	}
	return m.Result()
}
