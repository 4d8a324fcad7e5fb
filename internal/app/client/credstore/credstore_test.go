package credstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gophvault/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "credentials.json"))
	s.cost = bcrypt.MinCost
	return s
}

func TestStore_RememberVerify(t *testing.T) {
	s := newTestStore(t)

	found, err := s.Verify("a@b.c", "key")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Remember("a@b.c", "key"))

	found, err = s.Verify("a@b.c", "key")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Verify("a@b.c", "other")
	assert.True(t, found)
	assert.ErrorIs(t, err, apperr.ErrAuth)
	assert.Equal(t, "invalid master password", apperr.Message(err))

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Ticket(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ok, err := s.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Unlock("a@b.c", 15*time.Minute))

	ok, err = s.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Unlocked("other@b.c")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(16 * time.Minute)
	ok, err = s.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.False(t, ok, "ticket must expire")

	require.NoError(t, s.Unlock("a@b.c", 0))
	now = now.Add(24 * time.Hour)
	ok, err = s.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.True(t, ok, "zero ttl never expires")

	require.NoError(t, s.Lock())
	ok, err = s.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	first, second := New(path), New(path)
	first.cost = bcrypt.MinCost

	require.NoError(t, first.Remember("a@b.c", "key"))
	require.NoError(t, first.Unlock("a@b.c", time.Hour))

	ok, err := second.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, second.Forget("a@b.c"))

	found, err := first.Verify("a@b.c", "key")
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = first.Unlocked("a@b.c")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{"), 0o600))

	_, err := s.Verify("a@b.c", "key")
	assert.ErrorIs(t, err, apperr.ErrCredentialStore)
}
