package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/logger"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store, err := NewFileStore(path, logger.NewNop())
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	_, ok := store.Get()
	assert.False(t, ok, "empty store must read as absent")

	pair := domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, store.Set(pair))

	got, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, pair, got)
}

func TestFileStorePartialPairReadsAbsent(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Set(domain.TokenPair{AccessToken: "acc-only"}))

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileStoreCorruptFileReadsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path, logger.NewNop())
	require.NoError(t, err)

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileStoreClear(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing an empty store is not an error")

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestFileStorePermissions(t *testing.T) {
	store := newTestFileStore(t)
	require.NoError(t, store.Set(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMemoryStorePartialPairReadsAbsent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(domain.TokenPair{RefreshToken: "ref-only"}))

	_, ok := store.Get()
	assert.False(t, ok)
}
