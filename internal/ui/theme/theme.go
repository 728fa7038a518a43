package theme

import "github.com/charmbracelet/lipgloss"

var (
	Accent = lipgloss.Color("#7D56F4")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
