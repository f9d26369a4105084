package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := OpenGorm(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	return s
}

func TestGormStoreAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "lobby", 5)

	got, err := s.Recent(context.Background(), "lobby", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "msg-2", got[0].Text)
	assert.Equal(t, "msg-3", got[1].Text)
	assert.Equal(t, "msg-4", got[2].Text)
	assert.Equal(t, "Alice", got[0].Username)
}

func TestGormStoreUnknownRoom(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, "lobby", 1)

	got, err := s.Recent(context.Background(), "ghost", 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormStoreReopenKeepsMessages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.db")

	s, err := OpenGorm(path)
	require.NoError(t, err)
	seed(t, s, "lobby", 2)

	reopened, err := OpenGorm(path)
	require.NoError(t, err)
	got, err := reopened.Recent(context.Background(), "lobby", 100)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
