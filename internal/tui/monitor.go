// Package tui renders a live view of a serving bridge.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattjoyce/rvfx-bridge/internal/events"
)

// --- Styles ---

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD"))

	statusOK     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	statusFailed = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	statusIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const (
	maxCycles = 200
	maxEvents = 10
)

// --- Types ---

type Model struct {
	dir     string
	started time.Time
	now     time.Time

	width  int
	height int

	state    string
	handled  int
	failed   int
	cycles   []cycleRow
	eventLog []events.Event

	sub         <-chan events.Event
	unsubscribe func()

	cycleTable table.Model
}

type cycleRow struct {
	at time.Time
	events.Cycle
}

type eventMsg events.Event
type clockMsg time.Time
type closedMsg struct{}

// --- Init ---

// NewMonitor subscribes to hub. dir is shown in the header.
func NewMonitor(hub *events.Hub, dir string) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ST", Width: 2},
			{Title: "Time", Width: 8},
			{Title: "Command", Width: 14},
			{Title: "Track", Width: 5},
			{Title: "Result", Width: 40},
			{Title: "Took", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sub, cancel := hub.Subscribe()
	now := time.Now()
	m := Model{
		dir:         dir,
		started:     now,
		now:         now,
		state:       "starting",
		sub:         sub,
		unsubscribe: cancel,
		cycleTable:  t,
	}
	// Replay what happened before the monitor attached.
	for _, ev := range hub.SnapshotSince(0) {
		m.apply(ev)
	}
	m.refreshRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.receiveNextEvent(),
		clock(),
		tea.EnterAltScreen,
	)
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.unsubscribe != nil {
				m.unsubscribe()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cycleTable.SetWidth(m.width - 6)
		if h := m.height/2 - 4; h > 3 {
			m.cycleTable.SetHeight(h)
		}

	case eventMsg:
		m.apply(events.Event(msg))
		m.refreshRows()
		return m, m.receiveNextEvent()

	case clockMsg:
		m.now = time.Time(msg)
		return m, clock()

	case closedMsg:
		m.state = "detached"
		return m, nil
	}

	m.cycleTable, cmd = m.cycleTable.Update(msg)
	return m, cmd
}

func (m *Model) apply(e events.Event) {
	m.eventLog = append([]events.Event{e}, m.eventLog...)
	if len(m.eventLog) > maxEvents {
		m.eventLog = m.eventLog[:maxEvents]
	}

	switch e.Type {
	case events.TypeBridgeState:
		m.state = e.State
	case events.TypeCycleHandled, events.TypeCycleFailed:
		if e.Cycle == nil {
			return
		}
		if e.Cycle.Success {
			m.handled++
		} else {
			m.failed++
		}
		m.cycles = append([]cycleRow{{at: e.At, Cycle: *e.Cycle}}, m.cycles...)
		if len(m.cycles) > maxCycles {
			m.cycles = m.cycles[:maxCycles]
		}
	}
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.cycles))
	for _, c := range m.cycles {
		sym := statusOK.Render("●")
		result := c.Message
		if !c.Success {
			sym = statusFailed.Render("∅")
		}
		if c.WriteError != "" {
			result += " (response not written)"
		}
		track := "-"
		if c.TrackIndex >= 0 {
			track = strconv.Itoa(c.TrackIndex)
		}
		rows = append(rows, table.Row{
			sym,
			c.at.Local().Format("15:04:05"),
			c.Command,
			track,
			result,
			c.Duration.Round(time.Millisecond).String(),
		})
	}
	m.cycleTable.SetRows(rows)
}

// --- View ---

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	cycles := borderStyle.Width(m.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Commands"),
			m.cycleTable.View(),
		),
	)

	eventsView := borderStyle.Width(m.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Event Stream"),
			m.renderEvents(),
		),
	)

	help := helpStyle.Render(" [q] Quit • [↑/↓] Scroll")

	return docStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			m.renderHeader(),
			cycles,
			eventsView,
			help,
		),
	)
}

func (m Model) renderHeader() string {
	var status string
	switch m.state {
	case "serving":
		status = statusOK.Render("SERVING")
	case "stopped", "detached":
		status = statusFailed.Render(strings.ToUpper(m.state))
	default:
		status = statusIdle.Render(strings.ToUpper(m.state))
	}

	items := []string{
		fmt.Sprintf("Bridge: %s", status),
		fmt.Sprintf("Uptime: %s", m.now.Sub(m.started).Round(time.Second)),
		fmt.Sprintf("Handled: %d", m.handled),
		fmt.Sprintf("Failed: %d", m.failed),
	}

	cell := lipgloss.NewStyle().Width((m.width - 4) / len(items))
	cells := make([]string, len(items))
	for i, it := range items {
		cells[i] = cell.Render(it)
	}
	return borderStyle.Width(m.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, cells...),
			helpStyle.Render(m.dir),
		),
	)
}

func (m Model) renderEvents() string {
	var lines []string
	for _, e := range m.eventLog {
		ts := e.At.Local().Format("15:04:05")
		detail := e.State
		if e.Cycle != nil {
			detail = e.Cycle.Command
			if e.Cycle.Kind != "ok" {
				detail += " " + e.Cycle.Kind
			}
		}
		lines = append(lines, fmt.Sprintf("%s | %-14s | %s", ts, e.Type, detail))
	}
	if len(lines) == 0 {
		return "  No events yet..."
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// --- Commands ---

func (m Model) receiveNextEvent() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		ev, ok := <-sub
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func clock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
