package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cellsolve/internal/odesys"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

// Model is the live-view bubbletea model: it advances the system with
// fixed explicit Euler steps between frames and plots a sliding window of
// one state entry. The numerical core is untouched; this is a consumer of
// the same model contract the drivers use.
type Model struct {
	name   string
	sys    odesys.System
	labels []string

	states    odesys.State
	rates     odesys.State
	variables odesys.State

	t             float64
	dt            float64
	stepsPerFrame int
	fps           int

	stateIdx int
	history  []float64
	paused   bool
	width    int
	height   int
	err      error
}

func NewModel(name string, sys odesys.System, dt float64, fps int) (Model, error) {
	states, rates, variables, err := odesys.Initialize(sys)
	if err != nil {
		return Model{}, err
	}
	if dt <= 0 {
		return Model{}, fmt.Errorf("%w: got %g", odesys.ErrInvalidStepSize, dt)
	}
	if fps <= 0 {
		fps = 30
	}

	return Model{
		name:          name,
		sys:           sys,
		labels:        odesys.Labels(sys),
		states:        states,
		rates:         rates,
		variables:     variables,
		dt:            dt,
		stepsPerFrame: 50,
		fps:           fps,
		history:       make([]float64, 0, 512),
		width:         80,
		height:        24,
	}, nil
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "tab":
			m.stateIdx = (m.stateIdx + 1) % len(m.states)
			m.history = m.history[:0]
		case "+", "=":
			m.stepsPerFrame *= 2
		case "-":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.paused && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		m.sys.ComputeRates(m.t, m.states, m.rates, m.variables)
		for j := range m.states {
			m.states[j] += m.rates[j] * m.dt
		}
		m.t += m.dt
	}

	if !m.states.IsValid() {
		m.err = fmt.Errorf("state diverged (NaN/Inf) at t=%.4f", m.t)
		return
	}

	m.history = append(m.history, m.states[m.stateIdx])
	if max := m.width * 2; max > 0 && len(m.history) > max {
		m.history = m.history[len(m.history)-max:]
	}
}

func (m Model) stateLabel() string {
	if m.stateIdx < len(m.labels) && m.labels[m.stateIdx] != "" {
		return m.labels[m.stateIdx]
	}
	return fmt.Sprintf("x%d", m.stateIdx)
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("cellsolve live — %s", m.name)))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(errStyle.Render(m.err.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.history) >= 2 {
		plotWidth := m.width - 10
		if plotWidth < 20 {
			plotWidth = 20
		}
		plotHeight := m.height - 8
		if plotHeight < 5 {
			plotHeight = 5
		}
		window := m.history
		if len(window) > plotWidth {
			window = window[len(window)-plotWidth:]
		}
		sb.WriteString(asciigraph.Plot(window,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("%s, recent window", m.stateLabel())),
		))
	} else {
		sb.WriteString(statusStyle.Render("collecting samples..."))
	}
	sb.WriteString("\n\n")

	status := fmt.Sprintf("t=%.3f  %s=%.6f  %d steps/frame", m.t, m.stateLabel(), m.states[m.stateIdx], m.stepsPerFrame)
	if m.paused {
		status += "  " + pausedStyle.Render("[paused]")
	}
	sb.WriteString(statusStyle.Render(status))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("space pause · tab next state · +/- speed · q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// Run starts the live view and blocks until the user quits.
func Run(name string, sys odesys.System, dt float64, fps int) error {
	m, err := NewModel(name, sys, dt, fps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
