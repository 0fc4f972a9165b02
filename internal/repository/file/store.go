// Package file stores each session slot as a JSON file in one directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"alcyxob/vitality-planner/internal/repository"
)

// Store writes <dir>/<slot>.json. Writes go through a temp file and rename so
// a crash never leaves a half-written slot behind.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates dir if needed. A leading "~/" expands to the home directory.
func NewStore(dir string) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot repository.Slot) string {
	return filepath.Join(s.dir, string(slot)+".json")
}

func (s *Store) Get(_ context.Context, slot repository.Slot) ([]byte, error) {
	if !slot.Valid() {
		return nil, repository.ErrUnknownSlot
	}
	data, err := os.ReadFile(s.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return data, nil
}

func (s *Store) Set(_ context.Context, slot repository.Slot, value []byte) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, string(slot)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for slot %s: %w", slot, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %s: %w", slot, err)
	}
	if err := os.Rename(tmpName, s.path(slot)); err != nil {
		return fmt.Errorf("replace slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context, slot repository.Slot) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(slot)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear slot %s: %w", slot, err)
	}
	return nil
}
