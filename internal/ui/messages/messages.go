package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
)

// View transition messages.
type (
	// NavigateMsg asks the app to navigate to Path through the route guard.
	NavigateMsg struct{ Path string }
)

// Action result messages.
type (
	// AuthResultMsg carries the result of a login or registration.
	AuthResultMsg struct {
		Register bool
		Username string
		Result   auth.Result
	}

	LogoutDoneMsg struct {
		Username string
	}

	DeleteResultMsg struct {
		Result auth.Result
	}

	ProfileLoadedMsg struct {
		Profile *api.UserProfile
		Err     error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)

// Navigate returns a command that emits a NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
