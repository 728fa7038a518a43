package login

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/router"
	"github.com/fragmede/sesame/internal/ui/messages"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		creds   api.Credentials
		wantErr bool
	}{
		{"login empty", ModeLogin, api.Credentials{}, true},
		{"login short values allowed", ModeLogin, api.Credentials{Username: "al", Password: "x"}, false},
		{"register short username", ModeRegister, api.Credentials{Username: "al", Password: "secret1"}, true},
		{"register short password", ModeRegister, api.Credentials{Username: "alice", Password: "12345"}, true},
		{"register ok", ModeRegister, api.Credentials{Username: "alice", Password: "123456"}, false},
		{"register multibyte username", ModeRegister, api.Credentials{Username: "élé", Password: "123456"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, tt.mode)
			got := m.validate(tt.creds)
			if tt.wantErr {
				assert.NotEmpty(t, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestSubmit_EmptyFieldsShowsError(t *testing.T) {
	m := New(nil, ModeLogin)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Username and password required", m.Err())
	assert.False(t, m.Submitting())
}

func TestAuthResultClearsSubmitting(t *testing.T) {
	m := New(nil, ModeRegister)
	m.submitting = true

	m, _ = m.Update(messages.AuthResultMsg{Register: true, Result: auth.Result{Kind: auth.KindRegistration, Message: "taken"}})
	assert.False(t, m.Submitting())
	assert.Equal(t, "taken", m.Err())
}

func TestModeSwitchKeys(t *testing.T) {
	tests := []struct {
		mode Mode
		key  tea.KeyType
		want string
	}{
		{ModeLogin, tea.KeyCtrlR, router.PathRegister},
		{ModeLogin, tea.KeyCtrlF, router.PathForgotPassword},
		{ModeRegister, tea.KeyCtrlL, router.PathLogin},
	}

	for _, tt := range tests {
		m := New(nil, tt.mode)
		_, cmd := m.Update(tea.KeyMsg{Type: tt.key})
		require.NotNil(t, cmd)
		assert.Equal(t, messages.NavigateMsg{Path: tt.want}, cmd())
	}
}
