package boltkv_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boltkv "github.com/trezcool/studytrack/storage/kv/bolt"
	testutil "github.com/trezcool/studytrack/tests"
)

func openStore(t *testing.T, path string) *boltkv.Store {
	t.Helper()
	store, err := boltkv.Open(path)
	require.NoError(t, err)
	return store
}

func TestStore(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "data", "kv.db"))
	defer store.Close()

	testutil.TestKVStore(t, store)
}

func TestStore_persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	store := openStore(t, path)
	require.NoError(t, store.Set(ctx, "profile:u1", []byte(`{"name":"Amy"}`)))
	require.NoError(t, store.Close())

	store = openStore(t, path)
	defer store.Close()
	val, err := store.Get(ctx, "profile:u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Amy"}`, string(val))
}

func TestStore_canceledContext(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "k")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(store.Set(ctx, "k", []byte(`{}`)), context.Canceled))
	_, err = store.Scan(ctx, "")
	assert.True(t, errors.Is(err, context.Canceled))
}
