package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	mindfulnessdto "healthquest/internal/modules/mindfulness/dto"
	"healthquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Snapshot(ctx context.Context) (mindfulnessdto.SnapshotOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SnapshotMsg struct {
	Snapshot mindfulnessdto.SnapshotOutput
	Err      error
}

type pollTickMsg time.Time

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the live mindfulness session. It polls the session machine
// once per second; the machine itself keeps the countdown, so a dropped poll
// only delays the display, never the session.
type Model struct {
	port     SessionPort
	snapshot mindfulnessdto.SnapshotOutput
	err      error
	width    int
	height   int
}

func New(port SessionPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), pollTick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollTickMsg:
		return m, tea.Batch(m.pollCmd(), pollTick())

	case SnapshotMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.snapshot = msg.Snapshot
		}
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch {
	case m.err != nil:
		body = theme.Muted.Render("session: " + m.err.Error())
	case m.snapshot.State == "" || m.snapshot.State == "idle":
		body = theme.Title.Render("No session running") + "\n\n" +
			theme.Muted.Render("start one with  :session:start <type> <minutes>") + "\n" +
			theme.Muted.Render("types: breathing meditation gratitude visualization")
	default:
		body = m.renderActive()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderActive() string {
	s := m.snapshot
	var sb strings.Builder

	title := s.Title
	if title == "" {
		title = s.Type + " session"
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")

	clock := fmt.Sprintf("%02d:%02d", s.RemainingSec/60, s.RemainingSec%60)
	switch s.State {
	case "paused":
		sb.WriteString(theme.Muted.Render(clock) + "  " + theme.Hot.Render("paused") + "\n\n")
	case "completed":
		sb.WriteString(theme.Done.Render("session complete") + "\n\n")
	default:
		sb.WriteString(theme.Hot.Render(clock) + "\n\n")
	}

	if s.DurationSec > 0 {
		ratio := float64(s.ElapsedSec) / float64(s.DurationSec)
		sb.WriteString(progressBar(ratio, 40) + "\n\n")
	}
	if s.BreathingCue != "" {
		sb.WriteString(theme.Done.Render(strings.ToUpper(s.BreathingCue)) + "\n\n")
	}
	if s.Guidance != "" {
		sb.WriteString(lipgloss.NewStyle().Width(56).Foreground(theme.Text).Render(s.Guidance) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("p: pause  r: resume  e: end without credit"))
	return sb.String()
}

func progressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return theme.Hot.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", width-filled))
}

func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.port.Snapshot(context.Background())
		return SnapshotMsg{Snapshot: snapshot, Err: err}
	}
}

func pollTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}
