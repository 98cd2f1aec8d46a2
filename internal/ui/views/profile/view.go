package profile

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressiondto "healthquest/internal/modules/progression/dto"
	questdto "healthquest/internal/modules/quest/dto"
	"healthquest/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ProfilePort interface {
	Get(ctx context.Context) (progressiondto.ProfileOutput, error)
}

type QuestProgressPort interface {
	TotalProgress(ctx context.Context) (questdto.ProgressOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Profile progressiondto.ProfileOutput
	Quests  questdto.ProgressOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	profiles ProfilePort
	quests   QuestProgressPort
	profile  progressiondto.ProfileOutput
	progress questdto.ProgressOutput
	err      error
	width    int
	height   int
}

func New(profiles ProfilePort, quests QuestProgressPort) Model {
	return Model{profiles: profiles, quests: quests}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads profile and quest totals. The app model calls this after
// anything that can award experience.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := m.profiles.Get(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		progress, err := m.quests.TotalProgress(ctx)
		return LoadedMsg{Profile: profile, Quests: progress, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.profile = msg.Profile
			m.progress = msg.Quests
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("profile: "+m.err.Error()))
	}
	p := m.profile
	var sb strings.Builder

	name := p.Name
	if name == "" {
		name = "adventurer"
	}
	sb.WriteString(theme.Title.Render(name) + "\n")
	sb.WriteString(theme.Muted.Render(p.FitnessLevel) + "\n\n")

	sb.WriteString(fmt.Sprintf("%s %d\n", theme.Muted.Render("level"), p.CurrentLevel))
	sb.WriteString(fmt.Sprintf("%s %d\n", theme.Muted.Render("xp   "), p.TotalXP))
	sb.WriteString(xpBar(p.ProgressToNext, 40) + "  " + theme.Muted.Render(fmt.Sprintf("%.0f%% to next", p.ProgressToNext*100)) + "\n\n")

	sb.WriteString(theme.Muted.Render("quests ") + fmt.Sprintf("%d / %d levels complete\n", m.progress.CompletedLevels, m.progress.TotalLevels))
	if len(p.PreferredActivities) > 0 {
		sb.WriteString(theme.Muted.Render("likes  ") + strings.Join(p.PreferredActivities, ", ") + "\n")
	}
	if !p.OnboardingDone {
		sb.WriteString("\n" + theme.Hot.Render("onboarding pending — run `healthquest profile setup`") + "\n")
	}
	if len(p.Achievements) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Achievements") + "\n")
		for _, a := range p.Achievements {
			sb.WriteString("  " + theme.Done.Render("★") + " " + a + "\n")
		}
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

func xpBar(ratio float64, width int) string {
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
