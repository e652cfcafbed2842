package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "ticketing-system", []byte(`{"version":1}`)))

	data, err := storage.Load(ctx, "ticketing-system")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), data)
}

func TestFileStorage_MissingKey(t *testing.T) {
	storage := NewFileStorage(t.TempDir())

	_, err := storage.Load(context.Background(), "never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_OverwriteReplacesContent(t *testing.T) {
	storage := NewFileStorage(t.TempDir())
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "k", []byte("first")))
	require.NoError(t, storage.Save(ctx, "k", []byte("second")))

	data, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestFileStorage_CreatesDirectoryOnSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	storage := NewFileStorage(dir)

	require.NoError(t, storage.Save(context.Background(), "k", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "k.json"))
	assert.NoError(t, err)
}

func TestFileStorage_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)
	require.NoError(t, storage.Save(context.Background(), "k", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestMemoryStorage_RoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	_, err := storage.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, storage.Save(ctx, "k", []byte("payload")))
	data, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestMemoryStorage_IsolatesCallers(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	input := []byte("payload")
	require.NoError(t, storage.Save(ctx, "k", input))
	input[0] = 'X'

	data, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data, "saved blob is a copy")

	data[0] = 'Y'
	again, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again, "loaded blob is a copy")
}
