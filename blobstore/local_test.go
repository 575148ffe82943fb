package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ifs "github.com/hupe1980/pointmerge/internal/fs"
)

func testStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"local":  NewLocalStore(t.TempDir()),
		"memory": NewMemoryStore(),
	}
}

func TestStore_Lifecycle(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			data := []byte("hello world, this is a test blob")

			require.NoError(t, store.Put(ctx, "snapshots/a.pmrg", data))
			require.NoError(t, store.Put(ctx, "snapshots/b.pmrg", []byte("b")))
			require.NoError(t, store.Put(ctx, CurrentName, []byte("snapshots/b.pmrg")))

			blob, err := store.Open(ctx, "snapshots/a.pmrg")
			require.NoError(t, err)
			defer blob.Close()
			require.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 5)
			n, err := blob.ReadAt(ctx, buf, 6)
			require.NoError(t, err)
			require.Equal(t, 5, n)
			require.Equal(t, "world", string(buf))

			// Reading past the end returns what is there plus io.EOF.
			n, err = blob.ReadAt(ctx, make([]byte, 10), int64(len(data))-3)
			assert.Equal(t, 3, n)
			assert.ErrorIs(t, err, io.EOF)
			_, err = blob.ReadAt(ctx, buf, 100)
			assert.ErrorIs(t, err, io.EOF)

			names, err := store.List(ctx, "snapshots/")
			require.NoError(t, err)
			assert.Equal(t, []string{"snapshots/a.pmrg", "snapshots/b.pmrg"}, names)

			all, err := store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{CurrentName, "snapshots/a.pmrg", "snapshots/b.pmrg"}, all)

			got, err := ReadAll(ctx, store, CurrentName)
			require.NoError(t, err)
			assert.Equal(t, "snapshots/b.pmrg", string(got))

			require.NoError(t, store.Delete(ctx, "snapshots/a.pmrg"))
			require.NoError(t, store.Delete(ctx, "snapshots/a.pmrg"))
			_, err = store.Open(ctx, "snapshots/a.pmrg")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_PutReplaces(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			require.NoError(t, store.Put(ctx, "x", []byte("first")))
			require.NoError(t, store.Put(ctx, "x", []byte("second")))

			got, err := ReadAll(ctx, store, "x")
			require.NoError(t, err)
			assert.Equal(t, "second", string(got))
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			cancel()
			assert.ErrorIs(t, store.Put(ctx, "x", []byte("data")), context.Canceled)
			_, err := store.Open(ctx, "x")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestMemoryStore_PutCopiesData(t *testing.T) {
	store := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Put(t.Context(), "k", data))
	data[0] = 'z'

	got, err := ReadAll(t.Context(), store, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	require.NoError(t, store.Put(t.Context(), "a/b.bin", []byte("payload")))

	entries, err := os.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.bin", entries[0].Name())
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_FailedPutKeepsPreviousBlob(t *testing.T) {
	faults := map[string]ifs.Fault{
		"write":  {FailAfterBytes: 4},
		"sync":   {FailOnSync: true},
		"close":  {FailOnClose: true},
		"rename": {FailOnRename: true},
	}
	for name, fault := range faults {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			ffs := ifs.NewFaultyFS(nil)
			store := NewLocalStore(dir, WithFileSystem(ffs))
			require.NoError(t, store.Put(t.Context(), "blob.bin", []byte("old content")))

			ffs.AddRule("blob.bin", fault)
			err := store.Put(t.Context(), "blob.bin", []byte("new content"))
			assert.ErrorIs(t, err, ifs.ErrInjected)

			ffs.ClearRules()
			got, err := ReadAll(t.Context(), store, "blob.bin")
			require.NoError(t, err)
			assert.Equal(t, "old content", string(got))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file left behind")
		})
	}
}
