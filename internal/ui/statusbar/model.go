package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	appStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#555555")).
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	busyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FFD700")).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)
)

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	page       string
	username   string
	busy       bool
	statusText string
	isError    bool
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetPage sets the name of the current page.
func (m *Model) SetPage(name string) {
	m.page = name
}

// SetUser sets the logged-in username; "" means logged out.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetBusy toggles the in-flight indicator.
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetStatus sets a status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Status returns the current status message.
func (m Model) Status() string {
	return m.statusText
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	left := appStyle.Render("sesame")
	if m.page != "" {
		left += pageStyle.Render(m.page)
	}

	var right string
	if m.statusText != "" {
		if m.isError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.busy {
		right += busyStyle.Render("working")
	}
	if m.username != "" {
		right += userStyle.Render(m.username)
	} else {
		right += statusTextStyle.Render("not logged in")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, mid, right)
}
