package today

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "healthquest/internal/modules/activity/dto"
	"healthquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ActivityPort interface {
	Summary(ctx context.Context) (activitydto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SummaryLoadedMsg struct {
	Summary activitydto.SummaryOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

type progressItem struct {
	progress activitydto.ProgressOutput
}

func (i progressItem) Title() string { return i.progress.Type }
func (i progressItem) Description() string {
	return fmt.Sprintf("%d / %d min  %s", i.progress.MinutesToday, i.progress.TargetMinutes, bar(i.progress.Ratio, 16))
}
func (i progressItem) FilterValue() string { return i.progress.Type }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ActivityPort
	list    list.Model
	summary activitydto.SummaryOutput
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ActivityPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Teal).BorderForeground(theme.Teal)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Amber).BorderForeground(theme.Teal)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Today"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Teal)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the summary. The app model calls this after any palette
// command that touches the ledger.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.port.Summary(context.Background())
		return SummaryLoadedMsg{Summary: summary, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SummaryLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Today — " + msg.Err.Error()
			return m, nil
		}
		m.summary = msg.Summary
		items := make([]list.Item, len(msg.Summary.Progress))
		for i, p := range msg.Summary.Progress {
			items[i] = progressItem{progress: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderSummary())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading today…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedType returns the activity type under the cursor, if any.
func (m Model) SelectedType() (string, bool) {
	if item, ok := m.list.SelectedItem().(progressItem); ok {
		return item.progress.Type, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderSummary() string {
	s := m.summary
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Date.Format("Monday, Jan 2")) + "\n\n")
	sb.WriteString(theme.Muted.Render("active:  ") + fmt.Sprintf("%d min\n", s.TotalMinutes))
	sb.WriteString(theme.Muted.Render("steps:   ") + fmt.Sprintf("%d\n", s.Steps))
	sb.WriteString(theme.Muted.Render("streak:  ") + fmt.Sprintf("%d days\n", s.WeeklyStreak))
	if s.CheckIn != nil {
		sb.WriteString(theme.Muted.Render("mood:    ") + s.CheckIn.Mood + "\n")
		sb.WriteString(theme.Muted.Render("energy:  ") + s.CheckIn.Energy + "\n")
		if s.CheckIn.Note != "" {
			sb.WriteString(theme.Muted.Render("note:    ") + s.CheckIn.Note + "\n")
		}
	} else {
		sb.WriteString(theme.Muted.Render("no check-in yet — try :mood or :energy") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("l: log 10 min of selected type  :: palette"))
	return sb.String()
}

func bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
