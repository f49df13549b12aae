// Package tui is a terminal front end for the launch panel built on
// bubbletea. It draws the controls, a live side view of the run and the
// final distance.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opd-ai/go-celestial/pkg/config"
	"github.com/opd-ai/go-celestial/pkg/control"
	"github.com/opd-ai/go-celestial/pkg/logging"
	"github.com/opd-ai/go-celestial/pkg/physics"
	"github.com/opd-ai/go-celestial/pkg/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	frame  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
)

const helpText = "↑/↓ select • ←/→ adjust • p planet • enter launch • q quit"

// Launcher starts a run from a parameter snapshot.
type Launcher interface {
	Start(ctx context.Context, p physics.Parameters) (string, error)
}

// framesMsg carries messages drained from the queue.
type framesMsg []any

// Model is the bubbletea model of the launch panel.
type Model struct {
	ctx      context.Context
	panel    *control.Panel
	launcher Launcher
	queue    *render.Queue
	logger   *logging.Logger

	view *render.TerminalRenderer
	sink *render.SceneSink

	last    render.Frame
	running bool
	err     error
}

// New creates the model. launcher must write into queue.
func New(ctx context.Context, cfg *config.Config, panel *control.Panel, launcher Launcher, queue *render.Queue, logger *logging.Logger) *Model {
	view := render.NewTerminalRendererTo(io.Discard, cfg.Display.TerminalCols, cfg.Display.TerminalRows, cfg.Display.TerminalScale, false)
	view.SetStatus("Press enter to launch")
	return &Model{
		ctx:      ctx,
		panel:    panel,
		launcher: launcher,
		queue:    queue,
		logger:   logger,
		view:     view,
		sink:     render.NewSceneSink(view),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForFrames()
}

func (m *Model) waitForFrames() tea.Cmd {
	q := m.queue
	return func() tea.Msg {
		<-q.Notify()
		return framesMsg(q.Drain())
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case framesMsg:
		m.apply(msg)
		return m, m.waitForFrames()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		m.panel.FocusPrev()
	case "down", "j":
		m.panel.FocusNext()
	case "left", "h":
		m.panel.Adjust(-1)
	case "right", "l":
		m.panel.Adjust(1)
	case "p":
		m.panel.CyclePlanet(1)
	case "enter", " ":
		m.err = nil
		if _, err := m.launcher.Start(m.ctx, m.panel.Snapshot()); err != nil {
			m.err = err
			m.logger.Error(m.ctx, "failed to start simulation", err)
		}
	}
	return nil
}

func (m *Model) apply(msgs []any) {
	for _, msg := range msgs {
		switch v := msg.(type) {
		case render.Scene:
			m.sink.Reset(v)
			m.last = render.Frame{}
			m.running = true
		case render.Frame:
			m.sink.Update(v)
			m.last = v
		case render.Summary:
			m.sink.Report(v)
			m.running = false
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(cyan.Bold(true).Render("Projectile Launch"))
	b.WriteString("\n\n")

	for _, line := range m.controlLines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(frame.Render(strings.TrimRight(m.view.String(), "\n")))
	b.WriteByte('\n')

	if m.running {
		s := m.last.State
		b.WriteString(yellow.Render(fmt.Sprintf("t=%.2fs  x=%.2fm  y=%.2fm", s.Time, s.Position.X, s.Position.Y)))
	} else {
		b.WriteString(green.Render(m.view.Status()))
	}
	b.WriteByte('\n')
	if m.err != nil {
		b.WriteString(red.Render(m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(dim.Render(helpText))
	return b.String()
}

func (m *Model) controlLines() []string {
	sliders := m.panel.Sliders()
	focus := m.panel.Focus()
	lines := make([]string, 0, len(sliders)+1)
	for i, s := range sliders {
		lines = append(lines, row(i == focus, s.String(), bar(s.Fraction(), 20)))
	}
	lines = append(lines, row(focus == len(sliders), "Planet: "+m.panel.Planet().Name, m.panel.GravityLabel()))
	return lines
}

func row(focused bool, label, extra string) string {
	if focused {
		return cyan.Render("> "+fmt.Sprintf("%-28s", label)) + " " + white.Render(extra)
	}
	return dim.Render("  "+fmt.Sprintf("%-28s", label)) + " " + dim.Render(extra)
}

// bar draws a slider track of width cells filled to fraction f.
func bar(f float64, width int) string {
	n := int(f*float64(width) + 0.5)
	n = max(0, min(width, n))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

// Run runs the program on the alternate screen until the user quits or ctx ends.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return logging.WrapError(err, "terminal UI")
	}
	return nil
}
