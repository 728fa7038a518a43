package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/ui/keys"
	"github.com/fragmede/sesame/internal/ui/messages"
	"github.com/fragmede/sesame/internal/ui/theme"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true).Width(12)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
)

// Model is the authenticated home view.
type Model struct {
	profile    *api.UserProfile
	loading    bool
	refreshing bool
	confirming bool
	busy       string
	err        string
	session    *auth.Session
	now        func() time.Time
	width      int
	height     int
}

// New creates the dashboard for the current session.
func New(session *auth.Session) Model {
	return Model{
		profile: session.Profile(),
		loading: true,
		session: session,
		now:     time.Now,
	}
}

// Init fetches the current user's profile.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		profile, err := session.FetchCurrentUser(context.Background())
		return messages.ProfileLoadedMsg{Profile: profile, Err: err}
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Confirming reports whether the delete confirmation prompt is shown.
func (m Model) Confirming() bool {
	return m.confirming
}

// Err returns the error shown on the dashboard.
func (m Model) Err() string {
	return m.err
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ProfileLoadedMsg:
		m.loading = false
		refreshed := m.refreshing
		m.refreshing = false
		if msg.Err != nil {
			m.err = errorMessage(msg.Err)
			return m, nil
		}
		m.err = ""
		m.profile = msg.Profile
		if refreshed {
			return m, statusCmd("Profile refreshed")
		}
		return m, nil

	case messages.DeleteResultMsg:
		m.busy = ""
		if !msg.Result.Success {
			m.err = msg.Result.Message
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy != "" {
			return m, nil
		}
		if m.confirming {
			switch {
			case key.Matches(msg, keys.Keys.Confirm):
				m.confirming = false
				m.busy = "Deleting account..."
				return m, m.deleteAccount()
			case key.Matches(msg, keys.Keys.Cancel):
				m.confirming = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Keys.Refresh):
			m.loading = true
			m.refreshing = true
			return m, m.fetch()
		case key.Matches(msg, keys.Keys.Logout):
			m.busy = "Logging out..."
			return m, m.logout()
		case key.Matches(msg, keys.Keys.Delete):
			m.confirming = true
			m.err = ""
		}
	}
	return m, nil
}

func (m Model) logout() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		username := session.Username()
		session.Logout(context.Background())
		return messages.LogoutDoneMsg{Username: username}
	}
}

func (m Model) deleteAccount() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return messages.DeleteResultMsg{Result: session.DeleteAccount(context.Background())}
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return messages.StatusMsg{Text: text}
	}
}

func errorMessage(err error) string {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(theme.TitleStyle.Render("Welcome, " + m.session.Username()))
	sb.WriteString("\n\n")

	switch {
	case m.loading && m.profile == nil:
		sb.WriteString(theme.DimStyle.Render("Loading profile..."))
		sb.WriteString("\n")
	case m.profile != nil:
		status := "enabled"
		if !m.profile.Enabled {
			status = "disabled"
		}
		sb.WriteString(row("Username", m.profile.Username))
		sb.WriteString(row("Role", m.profile.RoleName))
		sb.WriteString(row("Account", status))
	}

	if claims, ok := m.session.Claims(); ok && !claims.ExpiresAt.IsZero() {
		expiry := claims.ExpiresAt.Local().Format(time.DateTime)
		if claims.Expired(m.now()) {
			expiry += " (expired)"
		}
		sb.WriteString(row("Session", "until "+expiry))
	}

	if m.err != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.ErrorStyle.Render(m.err))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case m.busy != "":
		sb.WriteString(m.busy)
	case m.confirming:
		sb.WriteString(warnStyle.Render("Delete your account permanently?"))
		sb.WriteString(" " + keys.Help(keys.Keys.Confirm, keys.Keys.Cancel))
	default:
		sb.WriteString(theme.DimStyle.Render(keys.Help(keys.Keys.Refresh, keys.Keys.Logout, keys.Keys.Delete, keys.Keys.Quit)))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}

func row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s%s\n", labelStyle.Render(label+":"), theme.ValueStyle.Render(value))
}
