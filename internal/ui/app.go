package ui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/logger"
	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/ui/dashboard"
	"github.com/fragmede/sesame/internal/ui/keys"
	"github.com/fragmede/sesame/internal/ui/login"
	"github.com/fragmede/sesame/internal/ui/messages"
	"github.com/fragmede/sesame/internal/ui/notice"
	"github.com/fragmede/sesame/internal/ui/statusbar"
)

// App is the root Bubble Tea model. Every page change goes through the
// router, so access rules apply to keyboard navigation and to the
// transitions that follow an action alike.
type App struct {
	route router.Route

	// Child models; only the one matching route is live.
	loginForm login.Model
	dashboard dashboard.Model
	notice    notice.Model
	statusBar statusbar.Model

	session *auth.Session
	router  *router.Router
	log     *slog.Logger

	width  int
	height int
}

// NewApp creates the root application model. The session should already
// be restored.
func NewApp(session *auth.Session, r *router.Router, log *slog.Logger) *App {
	if log == nil {
		log = logger.Discard()
	}
	sb := statusbar.New()
	sb.SetUser(session.Username())
	return &App{
		statusBar: sb,
		session:   session,
		router:    r,
		log:       log.With(slog.String("component", "ui")),
	}
}

// Route returns the route currently displayed.
func (a *App) Route() router.Route {
	return a.route
}

// Init opens the root route.
func (a *App) Init() tea.Cmd {
	return a.navigate(router.PathRoot)
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 1 // Reserve 1 line for status bar.
		a.loginForm.SetSize(msg.Width, contentHeight)
		a.dashboard.SetSize(msg.Width, contentHeight)
		a.notice.SetSize(msg.Width, contentHeight)
		a.statusBar.SetSize(msg.Width)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.route.Path {
		case router.PathLogin:
			if key.Matches(msg, keys.Keys.Back) {
				return a, tea.Quit
			}
		case router.PathRegister:
			if key.Matches(msg, keys.Keys.Back) {
				return a, a.navigate(router.PathLogin)
			}
		case router.PathDashboard:
			if !a.dashboard.Confirming() && (key.Matches(msg, keys.Keys.Quit) || key.Matches(msg, keys.Keys.Back)) {
				return a, tea.Quit
			}
		default:
			if key.Matches(msg, keys.Keys.Quit) {
				return a, tea.Quit
			}
		}

	case messages.NavigateMsg:
		return a, a.navigate(msg.Path)

	case messages.AuthResultMsg:
		if msg.Result.Success {
			a.statusBar.SetUser(a.session.Username())
			a.statusBar.SetStatus("", false)
			return a, a.navigate(router.PathDashboard)
		}
		switch msg.Result.Kind {
		case auth.KindCredentials:
			return a, a.navigate(router.PathErrorCredentials)
		case auth.KindServer:
			return a, a.navigate(router.PathErrorServer)
		}
		// Registration failures are shown by the form itself.

	case messages.LogoutDoneMsg:
		a.statusBar.SetUser("")
		a.statusBar.SetStatus("Logged out", false)
		return a, a.navigate(router.PathLogin)

	case messages.DeleteResultMsg:
		if msg.Result.Success {
			text := msg.Result.Message
			if text == "" {
				text = "Account deleted"
			}
			a.statusBar.SetUser("")
			a.statusBar.SetStatus(text, false)
			return a, a.navigate(router.PathLogin)
		}

	case messages.ProfileLoadedMsg:
		if errors.Is(msg.Err, auth.ErrUnauthorized) {
			a.statusBar.SetUser("")
			a.statusBar.SetStatus("Session expired, please log in again", true)
			return a, a.navigate(router.PathLogin)
		}

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.route.Path {
	case router.PathLogin, router.PathRegister:
		a.loginForm, cmd = a.loginForm.Update(msg)
	case router.PathDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case router.PathForgotPassword, router.PathErrorCredentials, router.PathErrorServer:
		a.notice, cmd = a.notice.Update(msg)
	}
	a.statusBar.SetBusy(a.session.IsLoading())
	return a, cmd
}

// navigate resolves path through the router and builds the page it lands
// on. Pages are built fresh on every visit.
func (a *App) navigate(path string) tea.Cmd {
	d, err := a.router.Resolve(path)
	if err != nil {
		a.log.Warn("navigation failed", slog.String("path", path), logger.Err(err))
		a.statusBar.SetStatus("No such page: "+path, true)
		return nil
	}
	if d.Redirected {
		a.log.Debug("navigation redirected", slog.String("from", path), slog.String("to", d.Route.Path))
	}

	a.route = d.Route
	a.statusBar.SetPage(d.Route.Name)
	a.statusBar.SetBusy(a.session.IsLoading())
	contentHeight := a.height - 1

	switch d.Route.Path {
	case router.PathLogin:
		a.loginForm = login.New(a.session, login.ModeLogin)
		a.loginForm.SetSize(a.width, contentHeight)
		return a.loginForm.Init()
	case router.PathRegister:
		a.loginForm = login.New(a.session, login.ModeRegister)
		a.loginForm.SetSize(a.width, contentHeight)
		return a.loginForm.Init()
	case router.PathDashboard:
		a.dashboard = dashboard.New(a.session)
		a.dashboard.SetSize(a.width, contentHeight)
		return a.dashboard.Init()
	case router.PathForgotPassword:
		a.notice = notice.ForgotPassword()
	case router.PathErrorCredentials:
		a.notice = notice.CredentialsError(a.session.LastError())
	case router.PathErrorServer:
		a.notice = notice.ServerError(a.session.LastError())
	}
	a.notice.SetSize(a.width, contentHeight)
	return nil
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch a.route.Path {
	case router.PathLogin, router.PathRegister:
		content = a.loginForm.View()
	case router.PathDashboard:
		content = a.dashboard.View()
	default:
		content = a.notice.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}
