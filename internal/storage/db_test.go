package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestGetSetDelete(t *testing.T) {
	db, _ := openTestDB(t)

	_, ok, err := db.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("theme", "dark"))
	require.NoError(t, db.Set("theme", "light"))

	v, ok, err := db.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	require.NoError(t, db.Delete("theme"))
	require.NoError(t, db.Delete("theme"))
	_, ok, err = db.Get("theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentials_RoundTripAndClear(t *testing.T) {
	db, _ := openTestDB(t)

	token, username, err := db.LoadCredentials()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, username)

	require.NoError(t, db.SaveCredentials("T1", "alice"))
	token, username, err = db.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
	assert.Equal(t, "alice", username)

	require.NoError(t, db.ClearCredentials())
	_, okToken, _ := db.Get(KeyToken)
	_, okUser, _ := db.Get(KeyUsername)
	assert.False(t, okToken)
	assert.False(t, okUser)
}

func TestCredentials_Partial(t *testing.T) {
	db, _ := openTestDB(t)

	require.NoError(t, db.Set(KeyToken, "T1"))
	_, _, err := db.LoadCredentials()
	assert.ErrorIs(t, err, ErrPartialCredentials)
}

func TestCredentials_SurviveReopen(t *testing.T) {
	db, path := openTestDB(t)
	require.NoError(t, db.SaveCredentials("T1", "alice"))
	require.NoError(t, db.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, username, err := reopened.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
	assert.Equal(t, "alice", username)
}
