package dashboard

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status_db.json")
	store := NewFileStore(path)

	board, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultBoard(), board)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Board
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, DefaultBoard(), onDisk)
}

func TestFileStore_CorruptFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status_db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)

	board, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultBoard(), board)

	// The corrupt file is left as is
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status_db.json")
	store := NewFileStore(path)

	board, err := store.Update(context.Background(), StatusUpdate{User: "Rishi", Mood: "Sleepy", Rating: 3})

	require.NoError(t, err)
	assert.Equal(t, Status{Mood: "Sleepy", Rating: 3, LastUpdated: "Just now"}, board["Rishi"])
	assert.Equal(t, DefaultBoard()["Veer"], board["Veer"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n    \"Rishi\""), "board is written with 4-space indent")

	reloaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, board, reloaded)
}

func TestFileStore_UpdateAddsNewUser(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "status_db.json"))

	board, err := store.Update(context.Background(), StatusUpdate{User: "Mochi", Mood: "Hungry", Rating: 10})

	require.NoError(t, err)
	assert.Len(t, board, 3)
	assert.Equal(t, "Hungry", board["Mochi"].Mood)
}

func TestFileStore_ConcurrentUpdates(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "status_db.json"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := store.Update(context.Background(), StatusUpdate{User: "Veer", Mood: "ok", Rating: rating})
			assert.NoError(t, err)
		}(i % 10)
	}
	wg.Wait()

	board, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, board, 2)
	assert.Equal(t, "ok", board["Veer"].Mood)
}

func TestFileStore_UnwritableDirectory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing-dir", "status_db.json"))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}
