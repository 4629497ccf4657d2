// Package viz renders a running simulation in the terminal: a braille
// canvas animation of the pendulum driven by a sim.Session, with a
// bounded trail behind the second bob and an energy sparkline. The
// view only ever calls Session.Step and the Cartesian projection; it
// has no access to the integration internals.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avelk/pendlab/internal/pendulum"
	"github.com/avelk/pendlab/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	frameInterval   = time.Second / 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type dot struct{ x, y int }

// Model is the bubbletea model for the live view.
type Model struct {
	session    *sim.Session
	canvas     *Canvas
	trail      []dot
	trailMax   int
	speed      float64
	running    bool
	showHelp   bool
	lastTick   time.Time
	energyHist []float64
}

// NewModel wraps a session for display. trailMax bounds the bob-2 path
// buffer; speed scales wall-clock time into simulated time.
func NewModel(session *sim.Session, trailMax int, speed float64) Model {
	return Model{
		session:    session,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		trail:      make([]dot, 0, trailMax),
		trailMax:   trailMax,
		speed:      speed,
		running:    true,
		energyHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.lastTick = time.Time{}
		case "r":
			m.session.Reset()
			m.trail = m.trail[:0]
			m.energyHist = m.energyHist[:0]
		case "[":
			m.speed *= 0.8
		case "]":
			m.speed *= 1.25
		case "?":
			m.showHelp = !m.showHelp
		}

	case TickMsg:
		now := time.Time(msg)
		if m.running {
			// dt comes from measured wall-clock time so the animation
			// tracks real time regardless of frame jitter.
			if !m.lastTick.IsZero() {
				dt := now.Sub(m.lastTick).Seconds() * m.speed
				m.session.Step(dt)
			}
			m.lastTick = now
			m.observe()
		}
		return m, tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m *Model) observe() {
	_, b2 := m.session.Positions()
	x, y := m.project(b2)
	m.trail = append(m.trail, dot{x, y})
	if len(m.trail) > m.trailMax {
		m.trail = m.trail[1:]
	}

	m.energyHist = append(m.energyHist, m.session.Energy())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
}

// project maps a world-space point (y up, pivot at origin) to dot
// coordinates with the pivot centered near the top third.
func (m *Model) project(pt pendulum.Point) (int, int) {
	p := m.session.Params()
	reach := p.L1 + p.L2

	dotW := float64(m.canvas.Width * 2)
	dotH := float64(m.canvas.Height * 4)
	scale := 0.45 * dotH / reach
	if w := 0.45 * dotW / reach; w < scale {
		scale = w
	}

	cx := dotW / 2
	cy := dotH * 0.45
	return int(cx + pt.X*scale), int(cy - pt.Y*scale)
}

func (m *Model) draw() {
	m.canvas.Clear()

	for _, d := range m.trail {
		m.canvas.Set(d.x, d.y)
	}

	b1, b2 := m.session.Positions()
	px, py := m.project(pendulum.Point{})
	x1, y1 := m.project(b1)
	x2, y2 := m.project(b2)

	m.canvas.Set(px, py)
	m.canvas.DrawLine(px, py, x1, y1)
	m.canvas.Blob(x1, y1)
	m.canvas.DrawLine(x1, y1, x2, y2)
	m.canvas.Blob(x2, y2)
}

func (m Model) View() string {
	m.draw()

	var b strings.Builder
	b.WriteString(headerStyle.Render("DOUBLE PENDULUM") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	b.WriteString(status + "\n")
	b.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4),
			asciigraph.Width(40),
			asciigraph.Caption("energy"),
		)
		b.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s := m.session.State()
	b.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.session.Time())) + "\n")
	b.WriteString(labelStyle.Render("theta1") + valueStyle.Render(fmt.Sprintf("%+.3f rad", s.Theta1)) + "\n")
	b.WriteString(labelStyle.Render("theta2") + valueStyle.Render(fmt.Sprintf("%+.3f rad", s.Theta2)) + "\n")
	b.WriteString(labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.session.Energy())) + "\n")
	b.WriteString(labelStyle.Render("speed") + valueStyle.Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")

	if m.showHelp {
		b.WriteString(helpStyle.Render("space pause · r reset · [ ] speed · q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help"))
	}

	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(session *sim.Session, trailMax int, speed float64) error {
	p := tea.NewProgram(NewModel(session, trailMax, speed))
	_, err := p.Run()
	return err
}
