package quests

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	questdto "healthquest/internal/modules/quest/dto"
	"healthquest/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type QuestPort interface {
	List(ctx context.Context) ([]questdto.LevelOutput, error)
	Get(ctx context.Context, number int) (questdto.LevelOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LevelsLoadedMsg struct {
	Levels []questdto.LevelOutput
	Err    error
}

type DetailLoadedMsg struct {
	Level questdto.LevelOutput
	Err   error
}

// CompletedMsg bubbles up from the app model after a quest:complete or
// challenge:* palette command so the view can reload.
type CompletedMsg struct {
	Status string
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type levelItem struct {
	level questdto.LevelOutput
}

func (i levelItem) Title() string {
	marker := "  "
	switch {
	case i.level.Completed:
		marker = "✓ "
	case !i.level.Unlocked:
		marker = "🔒 "
	}
	return fmt.Sprintf("%s%d. %s", marker, i.level.Number, i.level.Title)
}

func (i levelItem) Description() string {
	return fmt.Sprintf("%s  %.0f%%", i.level.World, i.level.Progress*100)
}

func (i levelItem) FilterValue() string { return i.level.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    QuestPort
	list    list.Model
	detail  questdto.LevelOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port QuestPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Teal).BorderForeground(theme.Teal)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Amber).BorderForeground(theme.Teal)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Quests"
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
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the level catalog.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		levels, err := m.port.List(context.Background())
		return LevelsLoadedMsg{Levels: levels, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LevelsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Quests — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Levels))
		for i, level := range msg.Levels {
			items[i] = levelItem{level: level}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Levels) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Levels[0].Number))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Level
			m.preview.SetContent(m.renderDetail())
		}

	case CompletedMsg:
		cmds = append(cmds, m.Refresh())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(levelItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.level.Number))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading quests…")
	}

	listW := m.width * 4 / 10
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
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedLevel returns the level number under the cursor, if any.
func (m Model) SelectedLevel() (int, bool) {
	if item, ok := m.list.SelectedItem().(levelItem); ok {
		return item.level.Number, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.Number == 0 {
		return theme.Muted.Render("Select a level to see its challenges")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("%d. %s", d.Number, d.Title)) + "\n")
	sb.WriteString(theme.Muted.Render(d.World) + "\n\n")
	sb.WriteString(d.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("required xp: ") + fmt.Sprintf("%d\n", d.RequiredXP))
	if len(d.Physical) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Physical") + "\n")
		for _, c := range d.Physical {
			sb.WriteString(fmt.Sprintf("%s %s — %d %s  %s\n", check(c.Completed), c.Title, c.Target, c.Unit, theme.Muted.Render(c.ID)))
		}
	}
	if len(d.Mindfulness) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Mindfulness") + "\n")
		for _, c := range d.Mindfulness {
			sb.WriteString(fmt.Sprintf("%s %s — %d min %s  %s\n", check(c.Completed), c.Title, c.DurationMin, c.Kind, theme.Muted.Render(c.ID)))
		}
	}
	if len(d.Rewards) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("rewards: ") + strings.Join(d.Rewards, ", ") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("c: complete level  :: palette"))
	return sb.String()
}

func check(done bool) string {
	if done {
		return theme.Done.Render("[x]")
	}
	return theme.Muted.Render("[ ]")
}

func (m Model) loadDetailCmd(number int) tea.Cmd {
	return func() tea.Msg {
		level, err := m.port.Get(context.Background(), number)
		return DetailLoadedMsg{Level: level, Err: err}
	}
}
