package dashboard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/sesame/internal/api"
	"github.com/fragmede/sesame/internal/auth"
	"github.com/fragmede/sesame/internal/logger"
	"github.com/fragmede/sesame/internal/ui/messages"
)

type memStore struct{}

func (memStore) LoadCredentials() (string, string, error) { return "", "", nil }
func (memStore) SaveCredentials(string, string) error { return nil }
func (memStore) ClearCredentials() error { return nil }

func newModel() Model {
	s := auth.New(api.NewClient("http://127.0.0.1:1"), memStore{}, logger.Discard())
	return New(s)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProfileLoaded(t *testing.T) {
	m := newModel()
	m, _ = m.Update(messages.ProfileLoadedMsg{Profile: &api.UserProfile{Username: "alice", Enabled: true, RoleName: "USER"}})
	assert.Empty(t, m.Err())
	assert.Contains(t, m.View(), "USER")
	assert.Contains(t, m.View(), "enabled")
}

func TestProfileLoaded_Error(t *testing.T) {
	m := newModel()

	m, _ = m.Update(messages.ProfileLoadedMsg{Err: &auth.Error{Kind: auth.KindServer, Message: "Unable to connect"}})
	assert.Equal(t, "Unable to connect", m.Err())

	m, _ = m.Update(messages.ProfileLoadedMsg{Err: errors.New("boom")})
	assert.Equal(t, "boom", m.Err())
}

func TestDeleteConfirmation(t *testing.T) {
	m := newModel()

	m, cmd := m.Update(keyRunes("D"))
	assert.Nil(t, cmd)
	assert.True(t, m.Confirming())
	assert.Contains(t, m.View(), "Delete your account permanently?")

	m, cmd = m.Update(keyRunes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.Confirming())

	m, _ = m.Update(keyRunes("D"))
	m, cmd = m.Update(keyRunes("y"))
	assert.NotNil(t, cmd)
	assert.False(t, m.Confirming())

	// Keys are ignored while the deletion runs.
	m, cmd = m.Update(keyRunes("o"))
	assert.Nil(t, cmd)

	m, _ = m.Update(messages.DeleteResultMsg{Result: auth.Result{Kind: auth.KindServer, Message: "nope"}})
	assert.Equal(t, "nope", m.Err())
	assert.NotContains(t, m.View(), "Deleting account...")
}

func TestKeysReturnCommands(t *testing.T) {
	m := newModel()

	_, cmd := m.Update(keyRunes("r"))
	assert.NotNil(t, cmd)

	_, cmd = m.Update(keyRunes("o"))
	assert.NotNil(t, cmd)
}

func TestRefreshEmitsStatus(t *testing.T) {
	m := newModel()

	m, cmd := m.Update(messages.ProfileLoadedMsg{Profile: &api.UserProfile{Username: "alice"}})
	assert.Nil(t, cmd)

	m, _ = m.Update(keyRunes("r"))
	m, cmd = m.Update(messages.ProfileLoadedMsg{Profile: &api.UserProfile{Username: "alice"}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.StatusMsg{Text: "Profile refreshed"}, cmd())

	// A failed refresh shows the error instead.
	m, _ = m.Update(keyRunes("r"))
	m, cmd = m.Update(messages.ProfileLoadedMsg{Err: errors.New("boom")})
	assert.Nil(t, cmd)
	assert.Equal(t, "boom", m.Err())
}
