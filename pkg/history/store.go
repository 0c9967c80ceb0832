// Package history persists the ordered conversation log between runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Mokshitha4/Aura/pkg/types"
)

// Store is the durable log of conversation turns.
//
// Save has total-overwrite semantics: the entire history is rewritten on each
// call, so the stored state always equals the last successfully saved
// snapshot and never contains a partial turn.
type Store interface {
	// Load returns the persisted history in insertion order, or an empty
	// slice when nothing has been persisted yet.
	Load() ([]types.Turn, error)

	// Save replaces the persisted history with the given sequence.
	// Transient and pending turns are filtered out before writing.
	Save(turns []types.Turn) error
}

// FileStore implements Store using a single JSON file, written atomically
// via a temporary file and rename. Concurrent writers (the chat session and
// the background capture path) therefore see last-write-wins, never a torn
// file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// historyFile is the single named key holding the ordered turn sequence.
type historyFile struct {
	History []types.Turn `json:"history"`
}

// DefaultPath returns ~/.aura/history.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aura", "history.json"), nil
}

// NewFileStore creates a file-backed store at the given path.
// If path is empty, DefaultPath is used.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string { return s.path }

// Load reads the persisted history. A missing file is not an error: it
// yields an empty history.
func (s *FileStore) Load() ([]types.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []types.Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var file historyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if file.History == nil {
		return []types.Turn{}, nil
	}
	return file.History, nil
}

// Save rewrites the history file with the persistable subset of turns.
// Saving the same sequence twice produces the same stored state.
func (s *FileStore) Save(turns []types.Turn) error {
	persistable := make([]types.Turn, 0, len(turns))
	for _, t := range turns {
		if t.Persistable() {
			persistable = append(persistable, t)
		}
	}

	data, err := json.MarshalIndent(historyFile{History: persistable}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
