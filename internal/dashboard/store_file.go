package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Conceptual-Machines/ldr-sync-api/internal/logger"
)

// FileStore keeps the board in a flat JSON file
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path; the file is created lazily
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the board. A missing file is seeded with the default board;
// an unreadable or corrupt file yields the default board without touching it.
func (s *FileStore) Load(_ context.Context) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update overwrites one person's entry and writes the whole board back
func (s *FileStore) Update(_ context.Context, update StatusUpdate) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load()
	if err != nil {
		return nil, err
	}
	board[update.User] = update.status()

	data, err := json.MarshalIndent(board, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode status board: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write status board: %w", err)
	}
	return board, nil
}

func (s *FileStore) load() (Board, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		board := DefaultBoard()
		seed, err := json.Marshal(board)
		if err != nil {
			return nil, fmt.Errorf("failed to encode default board: %w", err)
		}
		if err := os.WriteFile(s.path, seed, 0o644); err != nil {
			return nil, fmt.Errorf("failed to seed status board: %w", err)
		}
		return board, nil
	}
	if err != nil {
		logger.Warn("Status board unreadable, using default", logger.Fields{"path": s.path, "error": err.Error()})
		return DefaultBoard(), nil
	}

	var board Board
	if err := json.Unmarshal(data, &board); err != nil || board == nil {
		logger.Warn("Status board corrupt, using default", logger.Fields{"path": s.path})
		return DefaultBoard(), nil
	}
	return board, nil
}
