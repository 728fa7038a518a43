package notice

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/ui/keys"
	"github.com/fragmede/sesame/internal/ui/messages"
	"github.com/fragmede/sesame/internal/ui/theme"
)

// Model is a static page with a message and a way back to login.
type Model struct {
	title  string
	body   string
	detail string
	isErr  bool
	width  int
	height int
}

// CredentialsError is shown after the server rejected a login.
func CredentialsError(detail string) Model {
	return Model{
		title:  "Login failed",
		body:   "The username or password you entered is incorrect.",
		detail: detail,
		isErr:  true,
	}
}

// ServerError is shown when the server could not be reached.
func ServerError(detail string) Model {
	return Model{
		title:  "Server unavailable",
		body:   "The authentication server did not respond. Check your connection and try again.",
		detail: detail,
		isErr:  true,
	}
}

// ForgotPassword is the password recovery placeholder.
func ForgotPassword() Model {
	return Model{
		title: "Forgot password",
		body:  "Password recovery is not available yet. Contact an administrator to reset your password.",
	}
}

// Title returns the page title.
func (m Model) Title() string {
	return m.title
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Keys.Enter) || key.Matches(msg, keys.Keys.Back) {
			return m, messages.Navigate(router.PathLogin)
		}
	}
	return m, nil
}

// View renders the page.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(theme.TitleStyle.Render(m.title))
	sb.WriteString("\n\n")
	sb.WriteString(theme.ValueStyle.Width(max(20, min(60, m.width-4))).Render(m.body))
	sb.WriteString("\n")
	if m.detail != "" {
		sb.WriteString("\n")
		style := theme.ValueStyle
		if m.isErr {
			style = theme.ErrorStyle
		}
		sb.WriteString(style.Render(m.detail))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(theme.KeyStyle.Render("Enter") + " to return to login")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
