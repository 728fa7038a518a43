package login

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/ui/keys"
	"github.com/fragmede/sesame/internal/ui/messages"
	"github.com/fragmede/sesame/internal/ui/theme"
)

// Mode selects between the login and registration forms.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Registration limits enforced by the server.
const (
	minUsername = 3
	maxUsername = 50
	minPassword = 6
	maxPassword = 100
)

// Model is the credential form.
type Model struct {
	mode          Mode
	usernameInput textinput.Model
	passwordInput textinput.Model
	focusIndex    int
	err           string
	submitting    bool
	session       *auth.Session
	width         int
	height        int
}

// New creates a credential form in the given mode.
func New(session *auth.Session, mode Mode) Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username"
	usernameInput.CharLimit = maxUsername
	usernameInput.Focus()
	usernameInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.CharLimit = maxPassword
	passwordInput.Width = 30

	return Model{
		mode:          mode,
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		session:       session,
	}
}

// Mode returns the form's mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Err returns the error shown under the form.
func (m Model) Err() string {
	return m.err
}

// Submitting reports whether a request is pending.
func (m Model) Submitting() bool {
	return m.submitting
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Keys.NextField):
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.usernameInput.Blur()
				m.passwordInput.Focus()
			} else {
				m.focusIndex = 0
				m.passwordInput.Blur()
				m.usernameInput.Focus()
			}
			return m, nil
		case key.Matches(msg, keys.Keys.Register) && m.mode == ModeLogin:
			return m, messages.Navigate(router.PathRegister)
		case key.Matches(msg, keys.Keys.Forgot) && m.mode == ModeLogin:
			return m, messages.Navigate(router.PathForgotPassword)
		case key.Matches(msg, keys.Keys.Login) && m.mode == ModeRegister:
			return m, messages.Navigate(router.PathLogin)
		case key.Matches(msg, keys.Keys.Enter):
			return m.submit()
		}

	case messages.AuthResultMsg:
		m.submitting = false
		if !msg.Result.Success {
			m.err = msg.Result.Message
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	creds := api.Credentials{
		Username: strings.TrimSpace(m.usernameInput.Value()),
		Password: m.passwordInput.Value(),
	}
	if msg := m.validate(creds); msg != "" {
		m.err = msg
		return m, nil
	}

	m.submitting = true
	m.err = ""
	session := m.session
	register := m.mode == ModeRegister
	return m, func() tea.Msg {
		var res auth.Result
		if register {
			res = session.Register(context.Background(), creds)
		} else {
			res = session.Login(context.Background(), creds)
		}
		return messages.AuthResultMsg{Register: register, Username: creds.Username, Result: res}
	}
}

func (m Model) validate(creds api.Credentials) string {
	if creds.Username == "" || creds.Password == "" {
		return "Username and password required"
	}
	if m.mode != ModeRegister {
		return ""
	}
	if n := utf8.RuneCountInString(creds.Username); n < minUsername || n > maxUsername {
		return "Username must be between 3 and 50 characters"
	}
	if n := utf8.RuneCountInString(creds.Password); n < minPassword || n > maxPassword {
		return "Password must be between 6 and 100 characters"
	}
	return ""
}

// View renders the form.
func (m Model) View() string {
	var sb strings.Builder

	title, action, pending, esc := "Log in", "log in", "Logging in...", "quit"
	if m.mode == ModeRegister {
		title, action, pending, esc = "Create an account", "register", "Creating account...", "go back"
	}

	sb.WriteString(theme.TitleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(theme.LabelStyle.Render("Username:"))
	sb.WriteString("\n")
	sb.WriteString(m.usernameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(theme.LabelStyle.Render("Password:"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(theme.ErrorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString(pending)
	} else {
		sb.WriteString(theme.KeyStyle.Render("Enter") + " to " + action + ", " + theme.KeyStyle.Render("Esc") + " to " + esc + "\n")
		if m.mode == ModeLogin {
			sb.WriteString(theme.DimStyle.Render(keys.Help(keys.Keys.Register, keys.Keys.Forgot)))
		} else {
			sb.WriteString(theme.DimStyle.Render(keys.Help(keys.Keys.Login)))
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
