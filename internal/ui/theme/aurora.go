package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base    = lipgloss.Color("#101223")
	Mantle  = lipgloss.Color("#161a30")
	Surface = lipgloss.Color("#272c4a")
	Text    = lipgloss.Color("#e6e9f5")
	Subtext = lipgloss.Color("#9aa3c7")
	Teal    = lipgloss.Color("#2490ad")
	Purple  = lipgloss.Color("#3c166d")
	Navy    = lipgloss.Color("#1a2962")
	Amber   = lipgloss.Color("#fbaa1a")
	Magenta = lipgloss.Color("#f0048d")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Teal)

	Title = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext)
	Hot   = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	Done  = lipgloss.NewStyle().Foreground(Magenta).Bold(true)
)
