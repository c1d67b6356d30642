// Package tui provides the Bubble Tea hunt interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/namehunt/internal/hunter"
	"github.com/verte-zerg/namehunt/internal/model"
	"github.com/verte-zerg/namehunt/internal/store"
)

const maxLogLines = 500

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	stampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

type eventMsg model.Event

type huntDoneMsg struct{}

// Model implements the Bubble Tea hunt UI.
type Model struct {
	cfg    model.Config
	hunter *hunter.Hunter
	store  *store.Store
	sink   *Sink

	log      []model.Event
	viewport viewport.Model
	ready    bool

	width  int
	height int

	startedAt  time.Time
	foundStart int
	quitting   bool
}

// NewModel constructs a hunt UI model.
func NewModel(cfg model.Config, st *store.Store, h *hunter.Hunter, sink *Sink) *Model {
	return &Model{
		cfg:    cfg,
		hunter: h,
		store:  st,
		sink:   sink,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		m.appendEvent(model.Event(msg))
		return m, m.waitForEvent()
	case huntDoneMsg:
		m.recordHunt()
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.hunter.Running() {
			m.quitting = true
			m.hunter.Stop()
			return m, nil
		}
		return m, tea.Quit
	case "s":
		if m.hunter.Running() {
			m.hunter.Stop()
			return m, nil
		}
		return m, m.startHunt()
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

func (m *Model) startHunt() tea.Cmd {
	m.startedAt = time.Now()
	_, found := m.hunter.Snapshot()
	m.foundStart = len(found)
	return func() tea.Msg {
		m.hunter.Run(context.Background())
		return huntDoneMsg{}
	}
}

func (m *Model) recordHunt() {
	stats, found := m.hunter.Snapshot()
	if stats.Attempts == 0 {
		return
	}
	rec := model.HuntRecord{
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
		URL:       m.cfg.BaseURL,
		Length:    m.cfg.Length,
		Attempts:  stats.Attempts,
		Available: stats.Available,
		Taken:     stats.Taken,
	}
	huntFound := found
	if m.foundStart <= len(found) {
		huntFound = found[m.foundStart:]
	}
	if _, err := m.store.InsertHunt(context.Background(), rec, huntFound); err != nil {
		logErrf("failed to record hunt: %v\n", err)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-m.sink.events)
	}
}

func (m *Model) appendEvent(e model.Event) {
	m.log = append(m.log, e)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
	m.refreshViewport()
}

func (m *Model) resizeViewport() {
	// One line each for header and footer.
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = bodyHeight
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	atBottom := m.viewport.AtBottom()
	lines := make([]string, len(m.log))
	for i, e := range m.log {
		lines[i] = formatLine(e, m.viewport.Width)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) renderHeader() string {
	header := fmt.Sprintf("namehunt · %s · length %d", m.cfg.BaseURL, m.cfg.Length)
	return headerStyle.Render(truncate(header, m.width))
}

func (m *Model) renderFooter() string {
	stats, found := m.hunter.Snapshot()
	segments := []string{
		fmt.Sprintf("Attempts %d · Available %d · Taken %d · Found total %d",
			stats.Attempts, stats.Available, stats.Taken, len(found)),
		stateLabel(m.hunter.Running(), m.hunter.Throttled()),
		"s start/stop · q quit",
	}
	return footerStyle.Render(truncate(strings.Join(segments, "  |  "), m.width))
}

func stateLabel(running, throttled bool) string {
	switch {
	case running && throttled:
		return "Paused"
	case running:
		return "Running"
	default:
		return "Idle"
	}
}

func formatLine(e model.Event, width int) string {
	stamp := e.At.Format("15:04:05")
	text := truncate(e.Text, width-len(stamp)-1)
	return stampStyle.Render(stamp) + " " + styleFor(e.Level).Render(text)
}

func styleFor(level model.Level) lipgloss.Style {
	switch level {
	case model.LevelSuccess:
		return successStyle
	case model.LevelError:
		return errorStyle
	case model.LevelMuted:
		return mutedStyle
	case model.LevelAccent:
		return accentStyle
	default:
		return infoStyle
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
