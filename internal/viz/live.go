package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/trace"
)

const (
	liveWidth  = 72
	liveHeight = 20
)

type TickMsg time.Time

// LiveModel accumulates a Poincaré section one toroidal turn per tick.
type LiveModel struct {
	tracer *trace.Tracer
	cfg    trace.Config
	states []flux.State
	points [][]flux.State
	turns  int
	total  int
	paused bool
	err    error
}

func NewLive(tr *trace.Tracer, cfg trace.Config, starts []flux.State) LiveModel {
	m := LiveModel{
		tracer: tr,
		cfg:    cfg,
		total:  cfg.Turns,
		states: make([]flux.State, len(starts)),
		points: make([][]flux.State, len(starts)),
	}
	for i, st := range starts {
		m.states[i] = st.Clone()
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}

	case TickMsg:
		if m.paused || m.err != nil || m.turns >= m.total {
			return m, tick()
		}
		m.advanceTurn()
		return m, tick()
	}

	return m, nil
}

// advanceTurn runs every line one toroidal period forward and converts
// the new crossing for plotting.
func (m *LiveModel) advanceTurn() {
	oneTurn := m.cfg
	oneTurn.Turns = 1

	for i, st := range m.states {
		if st == nil {
			continue
		}

		res, err := m.tracer.Run(context.Background(), st, oneTurn)
		if err != nil {
			// A lost line stops; the rest keep accumulating.
			m.states[i] = nil
			continue
		}

		next := res.Crossings[len(res.Crossings)-1]
		m.states[i] = next

		zeta := flux.TwoPi * float64(m.turns+1)
		p, err := m.tracer.Problem().ConvertCoords(flux.State{next[0], next[1], zeta})
		if err != nil {
			m.states[i] = nil
			continue
		}
		m.points[i] = append(m.points[i], p)
	}
	m.turns++
}

func (m LiveModel) View() string {
	var b strings.Builder

	proj := m.tracer.Problem().Projection()
	b.WriteString(headerStyle.Render(fmt.Sprintf("poincaré section — %s", m.tracer.Problem().Geometry())))
	b.WriteString("\n")
	b.WriteString(Section(m.points, proj, liveWidth, liveHeight))

	status := "running"
	if m.paused {
		status = "paused"
	}
	if m.turns >= m.total {
		status = "done"
	}
	b.WriteString(statLabelStyle.Render("turns"))
	b.WriteString(statValueStyle.Render(fmt.Sprintf("%d / %d   %s", m.turns, m.total, status)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · q quit"))
	b.WriteString("\n")
	return b.String()
}
