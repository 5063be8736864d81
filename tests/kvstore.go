package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studytrack/core"
)

// TestKVStore checks the behaviour every KVStore driver must share.
func TestKVStore(t *testing.T, store core.KVStore) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.Equal(t, core.ErrKeyNotFound, err)
	})

	t.Run("empty key matches nothing", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "profile:u1", []byte(`{"name":"Amy"}`)))
		_, err := store.Get(ctx, "")
		assert.Equal(t, core.ErrKeyNotFound, err)
		require.NoError(t, store.Delete(ctx, "profile:u1"))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "subject:u1:s1", []byte(`{"name":"Calculus"}`)))
		val, err := store.Get(ctx, "subject:u1:s1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Calculus"}`, string(val))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "subject:u1:s1", []byte(`{"name":"Calculus II"}`)))
		val, err := store.Get(ctx, "subject:u1:s1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Calculus II"}`, string(val))
	})

	t.Run("scan by prefix in key order", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "subject:u1:s3", []byte(`{"n":3}`)))
		require.NoError(t, store.Set(ctx, "subject:u1:s2", []byte(`{"n":2}`)))
		require.NoError(t, store.Set(ctx, "subject:u2:s9", []byte(`{"n":9}`)))
		require.NoError(t, store.Set(ctx, "subject:u10:s7", []byte(`{"n":7}`)))

		vals, err := store.Scan(ctx, "subject:u1:")
		require.NoError(t, err)
		require.Len(t, vals, 3)
		assert.JSONEq(t, `{"name":"Calculus II"}`, string(vals[0]))
		assert.JSONEq(t, `{"n":2}`, string(vals[1]))
		assert.JSONEq(t, `{"n":3}`, string(vals[2]))
	})

	t.Run("scan without matches", func(t *testing.T) {
		vals, err := store.Scan(ctx, "task:")
		require.NoError(t, err)
		assert.NotNil(t, vals)
		assert.Empty(t, vals)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		val, err := store.Get(ctx, "subject:u2:s9")
		require.NoError(t, err)
		val[0] = 'X'

		again, err := store.Get(ctx, "subject:u2:s9")
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":9}`, string(again))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "subject:u2:s9"))
		_, err := store.Get(ctx, "subject:u2:s9")
		assert.Equal(t, core.ErrKeyNotFound, err)

		// absent keys are not an error
		assert.NoError(t, store.Delete(ctx, "subject:u2:s9"))
	})
}
