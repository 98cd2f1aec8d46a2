package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "healthquest/internal/modules/activity/dto"
	mindfulnessdto "healthquest/internal/modules/mindfulness/dto"
	progressiondto "healthquest/internal/modules/progression/dto"
	questdto "healthquest/internal/modules/quest/dto"
	"healthquest/internal/ui/components"
	"healthquest/internal/ui/theme"
	profileview "healthquest/internal/ui/views/profile"
	questsview "healthquest/internal/ui/views/quests"
	sessionview "healthquest/internal/ui/views/session"
	todayview "healthquest/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type activityPort interface {
	LogActivity(ctx context.Context, input activitydto.LogInput) (activitydto.LogOutput, error)
	LogSteps(ctx context.Context, steps int) (activitydto.LogOutput, error)
	UpdateMood(ctx context.Context, mood, note string) (activitydto.CheckInOutput, error)
	UpdateEnergy(ctx context.Context, energy string) (activitydto.CheckInOutput, error)
	Summary(ctx context.Context) (activitydto.SummaryOutput, error)
}

type questPort interface {
	List(ctx context.Context) ([]questdto.LevelOutput, error)
	Get(ctx context.Context, number int) (questdto.LevelOutput, error)
	CompleteLevel(ctx context.Context, number int) (questdto.CompleteLevelOutput, error)
	CompletePhysical(ctx context.Context, number int, challengeID string) (questdto.CompleteChallengeOutput, error)
	CompleteMindfulness(ctx context.Context, number int, challengeID string) (questdto.CompleteChallengeOutput, error)
	TotalProgress(ctx context.Context) (questdto.ProgressOutput, error)
}

type mindfulnessPort interface {
	Start(ctx context.Context, input mindfulnessdto.StartInput) (mindfulnessdto.SnapshotOutput, error)
	Pause(ctx context.Context) (mindfulnessdto.SnapshotOutput, error)
	Resume(ctx context.Context) (mindfulnessdto.SnapshotOutput, error)
	End(ctx context.Context) error
	Snapshot(ctx context.Context) (mindfulnessdto.SnapshotOutput, error)
}

type progressionPort interface {
	Get(ctx context.Context) (progressiondto.ProfileOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabQuests
	tabSession
	tabProfile
	tabCount
)

var tabLabels = [tabCount]string{
	"Today", "Quests", "Session", "Profile",
}

// ─── async messages ───────────────────────────────────────────────────────────

type loggedMsg struct {
	out activitydto.LogOutput
	err error
}

type checkedInMsg struct {
	out activitydto.CheckInOutput
	err error
}

type sessionChangedMsg struct {
	verb string
	err  error
}

type questChangedMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Log      key.Binding
	Complete key.Binding
	Pause    key.Binding
	Resume   key.Binding
	EndSess  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Log:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log 10 min")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete level")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause session")),
		Resume:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume session")),
		EndSess:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Log, k.Complete},
		{k.Pause, k.Resume, k.EndSess},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	dataDir string

	// ports used at this orchestration level only
	activity    activityPort
	quest       questPort
	mindfulness mindfulnessPort

	// sub-views (one per tab)
	todayView   todayview.Model
	questsView  questsview.Model
	sessionView sessionview.Model
	profileView profileview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	dataDir string,
	activity activityPort,
	quest questPort,
	mindfulness mindfulnessPort,
	progression progressionPort,
) Model {
	return Model{
		dataDir:     dataDir,
		activity:    activity,
		quest:       quest,
		mindfulness: mindfulness,
		todayView:   todayview.New(activityPortBridge{p: activity}),
		questsView:  questsview.New(questPortBridge{p: quest}),
		sessionView: sessionview.New(sessionPortBridge{p: mindfulness}),
		profileView: profileview.New(progressionPortBridge{p: progression}, questProgressBridge{p: quest}),
		activeTab:   tabToday,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.questsView.Init(),
		m.sessionView.Init(),
		m.profileView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case loggedMsg:
		if msg.err != nil {
			m.status = "log failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("logged %s %dmin (+%dxp)", msg.out.Type, msg.out.Minutes, msg.out.XPAwarded)
			cmds = append(cmds, m.todayView.Refresh(), m.profileView.Refresh())
		}

	case checkedInMsg:
		if msg.err != nil {
			m.status = "check-in failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("check-in: mood=%s energy=%s", msg.out.Mood, msg.out.Energy)
			cmds = append(cmds, m.todayView.Refresh(), m.profileView.Refresh())
		}

	case sessionChangedMsg:
		if msg.err != nil {
			m.status = "session " + msg.verb + ": " + msg.err.Error()
		} else {
			m.status = "session " + msg.verb
			m.activeTab = tabSession
		}

	case questChangedMsg:
		if msg.err != nil {
			m.status = "quest: " + msg.err.Error()
		} else {
			m.status = msg.status
			cmds = append(cmds, m.questsView.Refresh(), m.profileView.Refresh())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "l":
			if m.activeTab == tabToday {
				if activityType, ok := m.todayView.SelectedType(); ok {
					cmds = append(cmds, m.logCmd(activityType, 10))
				}
			}
		case "c":
			if m.activeTab == tabQuests {
				if number, ok := m.questsView.SelectedLevel(); ok {
					cmds = append(cmds, m.completeLevelCmd(number))
				}
			}
		case "p":
			if m.activeTab == tabSession {
				cmds = append(cmds, m.sessionCmd("paused", func(ctx context.Context) error {
					_, err := m.mindfulness.Pause(ctx)
					return err
				}))
			}
		case "r":
			if m.activeTab == tabSession {
				cmds = append(cmds, m.sessionCmd("resumed", func(ctx context.Context) error {
					_, err := m.mindfulness.Resume(ctx)
					return err
				}))
			}
		case "e":
			if m.activeTab == tabSession {
				cmds = append(cmds, m.sessionCmd("ended, no credit", m.mindfulness.End))
			}
		}
	}

	// Propagate the message to the active tab's sub-view. The session view
	// also gets its poll ticks regardless of which tab is showing, so the
	// countdown stays current when the user switches back.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabQuests:
		m.questsView, tabCmd = m.questsView.Update(msg)
	case tabSession:
		m.sessionView, tabCmd = m.sessionView.Update(msg)
	case tabProfile:
		m.profileView, tabCmd = m.profileView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	if m.activeTab != tabSession {
		var pollCmd tea.Cmd
		m.sessionView, pollCmd = m.sessionView.Update(msg)
		cmds = append(cmds, pollCmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabQuests:
		return m.questsView.View()
	case tabSession:
		return m.sessionView.View()
	case tabProfile:
		return m.profileView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "healthquest  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "log":
		if len(parts) < 3 {
			m.status = "usage: log <type> <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.logCmd(parts[1], minutes)

	case "steps":
		if len(parts) < 2 {
			m.status = "usage: steps <count>"
			return m, nil
		}
		steps, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid step count"
			return m, nil
		}
		return m, func() tea.Msg {
			out, err := m.activity.LogSteps(context.Background(), steps)
			return loggedMsg{out: out, err: err}
		}

	case "mood":
		if len(parts) < 2 {
			m.status = "usage: mood <very_happy|happy|neutral|sad|stressed>"
			return m, nil
		}
		note := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, func() tea.Msg {
			out, err := m.activity.UpdateMood(context.Background(), parts[1], note)
			return checkedInMsg{out: out, err: err}
		}

	case "energy":
		if len(parts) < 2 {
			m.status = "usage: energy <high|medium|low>"
			return m, nil
		}
		return m, func() tea.Msg {
			out, err := m.activity.UpdateEnergy(context.Background(), parts[1])
			return checkedInMsg{out: out, err: err}
		}

	case "session:start":
		if len(parts) < 3 {
			m.status = "usage: session:start <type> <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[2])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.sessionCmd("started", func(ctx context.Context) error {
			_, err := m.mindfulness.Start(ctx, mindfulnessdto.StartInput{
				Type:        parts[1],
				DurationMin: minutes,
			})
			return err
		})

	case "session:pause":
		return m, m.sessionCmd("paused", func(ctx context.Context) error {
			_, err := m.mindfulness.Pause(ctx)
			return err
		})

	case "session:resume":
		return m, m.sessionCmd("resumed", func(ctx context.Context) error {
			_, err := m.mindfulness.Resume(ctx)
			return err
		})

	case "session:end":
		return m, m.sessionCmd("ended, no credit", m.mindfulness.End)

	case "quest:complete":
		if len(parts) < 2 {
			m.status = "usage: quest:complete <level>"
			return m, nil
		}
		number, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid level number"
			return m, nil
		}
		return m, m.completeLevelCmd(number)

	case "challenge:physical", "challenge:mindfulness":
		if len(parts) < 3 {
			m.status = "usage: " + parts[0] + " <level> <challenge-id>"
			return m, nil
		}
		number, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid level number"
			return m, nil
		}
		physical := parts[0] == "challenge:physical"
		return m, m.completeChallengeCmd(number, parts[2], physical)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabToday:
		return m.todayView.Filtering()
	case tabQuests:
		return m.questsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.questsView, _ = m.questsView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
	m.profileView, _ = m.profileView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) logCmd(activityType string, minutes int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.LogActivity(context.Background(), activitydto.LogInput{
			Type:    activityType,
			Minutes: minutes,
		})
		return loggedMsg{out: out, err: err}
	}
}

func (m Model) sessionCmd(verb string, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{verb: verb, err: op(context.Background())}
	}
}

func (m Model) completeLevelCmd(number int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.quest.CompleteLevel(context.Background(), number)
		if err != nil {
			return questChangedMsg{err: err}
		}
		if !out.Completed {
			return questChangedMsg{status: fmt.Sprintf("level %d is not completable yet", number)}
		}
		return questChangedMsg{status: fmt.Sprintf("level %d completed (+%dxp)", number, out.XPAwarded)}
	}
}

func (m Model) completeChallengeCmd(number int, challengeID string, physical bool) tea.Cmd {
	return func() tea.Msg {
		var (
			out questdto.CompleteChallengeOutput
			err error
		)
		if physical {
			out, err = m.quest.CompletePhysical(context.Background(), number, challengeID)
		} else {
			out, err = m.quest.CompleteMindfulness(context.Background(), number, challengeID)
		}
		if err != nil {
			return questChangedMsg{err: err}
		}
		if !out.Completed {
			return questChangedMsg{status: "nothing to confirm"}
		}
		if out.XPAwarded > 0 {
			return questChangedMsg{status: fmt.Sprintf("confirmed %s (+%dxp)", challengeID, out.XPAwarded)}
		}
		return questChangedMsg{status: "ticked " + challengeID}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type activityPortBridge struct{ p activityPort }

func (b activityPortBridge) Summary(ctx context.Context) (activitydto.SummaryOutput, error) {
	return b.p.Summary(ctx)
}

type questPortBridge struct{ p questPort }

func (b questPortBridge) List(ctx context.Context) ([]questdto.LevelOutput, error) {
	return b.p.List(ctx)
}
func (b questPortBridge) Get(ctx context.Context, number int) (questdto.LevelOutput, error) {
	return b.p.Get(ctx, number)
}

type sessionPortBridge struct{ p mindfulnessPort }

func (b sessionPortBridge) Snapshot(ctx context.Context) (mindfulnessdto.SnapshotOutput, error) {
	return b.p.Snapshot(ctx)
}

type progressionPortBridge struct{ p progressionPort }

func (b progressionPortBridge) Get(ctx context.Context) (progressiondto.ProfileOutput, error) {
	return b.p.Get(ctx)
}

type questProgressBridge struct{ p questPort }

func (b questProgressBridge) TotalProgress(ctx context.Context) (questdto.ProgressOutput, error) {
	return b.p.TotalProgress(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
