package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	bb, err := OpenBolt(filepath.Join(dir, "bolt", "docs.bolt"))
	require.NoError(t, err)
	sb, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	all := map[string]Backend{
		"file":   NewFileBackend(filepath.Join(dir, "data")),
		"bolt":   bb,
		"sqlite": sb,
		"memory": NewMemoryBackend(),
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Missing documents self-heal to their defaults.
			doc, err := b.Load(ctx, KindProducts)
			require.NoError(t, err)
			assert.JSONEq(t, `[]`, string(doc))
			doc, err = b.Load(ctx, KindSettings)
			require.NoError(t, err)
			assert.JSONEq(t, `{}`, string(doc))

			// Save replaces the whole document.
			require.NoError(t, b.Save(ctx, KindProducts, []byte(`[{"id":"a"}]`)))
			require.NoError(t, b.Save(ctx, KindProducts, []byte(`[{"id":"b"}]`)))
			doc, err = b.Load(ctx, KindProducts)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"b"}]`, string(doc))

			// Kinds are independent.
			doc, err = b.Load(ctx, KindSettings)
			require.NoError(t, err)
			assert.JSONEq(t, `{}`, string(doc))
		})
	}
}

func TestFileBackendCreatesDefaultOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewFileBackend(dir)

	_, err := b.Load(context.Background(), KindProducts)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "products.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileBackendEmptyFileReadsAsDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("\n"), 0o644))

	doc, err := NewFileBackend(dir).Load(context.Background(), KindSettings)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(doc))
}

func TestFileBackendSaveFailureIsStorageFailure(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the data directory should be.
	blocker := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := NewFileBackend(blocker).Save(context.Background(), KindProducts, []byte("[]"))
	require.Error(t, err)
	assert.True(t, IsStorageFailure(err))

	var sf *StorageFailure
	require.True(t, errors.As(err, &sf))
	assert.Equal(t, "save", sf.Op)
	assert.Equal(t, KindProducts, sf.Kind)
}

func TestDecodeCorruptDocument(t *testing.T) {
	var out []map[string]any
	err := Decode(KindProducts, []byte(`[{"id":`), &out)
	require.Error(t, err)
	assert.True(t, IsStorageFailure(err))

	require.NoError(t, Decode(KindProducts, []byte("  "), &out))
	assert.Empty(t, out)
}

func TestMemoryBackendInjectedFailures(t *testing.T) {
	m := NewMemoryBackend()
	m.SaveErr = errors.New("disk full")
	err := m.Save(context.Background(), KindSettings, []byte("{}"))
	assert.True(t, IsStorageFailure(err))
	assert.ErrorContains(t, err, "disk full")

	m.LoadErr = errors.New("permission denied")
	_, err = m.Load(context.Background(), KindSettings)
	assert.True(t, IsStorageFailure(err))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("cassandra", "x")
	assert.Error(t, err)

	b, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)
}

func TestOpenSQLiteMissingDirectory(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing", "docs.db"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "ping sqlite")
}

func TestBlankDocuments(t *testing.T) {
	assert.True(t, blank(nil))
	assert.True(t, blank([]byte(" \t\r\n")))
	assert.False(t, blank([]byte(" [] ")))
}
