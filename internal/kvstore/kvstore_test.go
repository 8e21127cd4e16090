package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/kvstore"
)

// Every scope must honor the same contract; run the shared suite
// against each implementation.
func TestStoreContract(t *testing.T) {
	stores := map[string]func(t *testing.T) kvstore.Store{
		"memory": func(t *testing.T) kvstore.Store {
			return kvstore.NewMemoryStore()
		},
		"file": func(t *testing.T) kvstore.Store {
			store, err := kvstore.NewFileStore(t.TempDir())
			require.NoError(t, err)
			return store
		},
	}

	for name, build := range stores {
		runStoreContract(t, name, build)
	}
}

// runStoreContract exercises the Store contract against one
// implementation. build must return a store with none of the contract
// keys set.
func runStoreContract(t *testing.T, name string, build func(t *testing.T) kvstore.Store) {
	ctx := context.Background()

	t.Run(name+"/absent key", func(t *testing.T) {
		store := build(t)

		value, ok, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, value)
	})

	t.Run(name+"/set then get", func(t *testing.T) {
		store := build(t)

		require.NoError(t, store.Set(ctx, "tasks", []byte(`[{"id":"1"}]`)))

		value, ok, err := store.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, string(value))
	})

	t.Run(name+"/replace on write", func(t *testing.T) {
		store := build(t)

		require.NoError(t, store.Set(ctx, "tasks", []byte(`first`)))
		require.NoError(t, store.Set(ctx, "tasks", []byte(`second`)))

		value, ok, err := store.Get(ctx, "tasks")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "second", string(value))
	})

	t.Run(name+"/delete", func(t *testing.T) {
		store := build(t)

		require.NoError(t, store.Set(ctx, "user", []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, "user"))

		_, ok, err := store.Get(ctx, "user")
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting an absent key is not an error.
		assert.NoError(t, store.Delete(ctx, "user"))
	})
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "tasks", []byte(`[1,2,3]`)))

	reopened, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)

	value, ok, err := reopened.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,2,3]", string(value))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := kvstore.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tasks", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "tasks.json", entries[0].Name())
	assert.Equal(t, filepath.Ext(entries[0].Name()), ".json")
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	require.NoError(t, store.Set(ctx, "tasks", []byte("abc")))

	value, _, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	value[0] = 'x'

	again, _, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
