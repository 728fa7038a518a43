package notice

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/ui/messages"
)

func TestPages(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		title string
		want  string
	}{
		{"credentials", CredentialsError("Invalid username or password"), "Login failed", "Invalid username or password"},
		{"server", ServerError("Unable to connect to server"), "Server unavailable", "Unable to connect to server"},
		{"forgot password", ForgotPassword(), "Forgot password", "Password recovery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.model
			m.SetSize(100, 30)
			assert.Equal(t, tt.title, m.Title())
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestReturnToLogin(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyEsc}} {
		_, cmd := ServerError("").Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, messages.NavigateMsg{Path: router.PathLogin}, cmd())
	}

	_, cmd := ServerError("").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
}
