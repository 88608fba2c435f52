package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactory builds a fresh store per test run.
type storeFactory func(t *testing.T) Store

func testStore(t *testing.T, newStore storeFactory) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "a/b.bin", []byte("hello")))

		data, err := s.Get(ctx, "a/b.bin")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "k", []byte("v1")))
		require.NoError(t, s.Put(ctx, "k", []byte("v2")))

		data, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), data)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))

		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting again is not an error.
		assert.NoError(t, s.Delete(ctx, "k"))
	})

	t.Run("list", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "checkpoints/b.ckpt", []byte("b")))
		require.NoError(t, s.Put(ctx, "checkpoints/a.ckpt", []byte("a")))
		require.NoError(t, s.Put(ctx, "results/r.json", []byte("r")))

		names, err := s.List(ctx, "checkpoints/")
		require.NoError(t, err)
		assert.Equal(t, []string{"checkpoints/a.ckpt", "checkpoints/b.ckpt"}, names)

		all, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("put copies data", func(t *testing.T) {
		s := newStore(t)
		buf := []byte("orig")
		require.NoError(t, s.Put(ctx, "k", buf))
		buf[0] = 'X'

		data, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("orig"), data)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestLocalStore(t *testing.T) {
	testStore(t, func(t *testing.T) Store {
		s, err := NewLocalStore(filepath.Join(t.TempDir(), "blobs"))
		require.NoError(t, err)
		return s
	})
}

func TestLocalStoreListSkipsTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []byte("v")))

	// A stale temp file from a crashed write must not surface as a blob.
	stale := filepath.Join(root, ".k.tmp-123")
	require.NoError(t, os.WriteFile(stale, []byte("partial"), 0o644))

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, names)
}

func TestLocalStoreNestedNames(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "deep/nested/dir/blob.bin", []byte("x")))

	names, err := s.List(ctx, "deep/")
	require.NoError(t, err)
	assert.Equal(t, []string{"deep/nested/dir/blob.bin"}, names)
}
