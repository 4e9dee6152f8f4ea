package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a token previously written by Save into the store. A missing
// file leaves the store signed out. An expired token is discarded.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: read %s: %w", path, err)
	}
	if err := s.Set(strings.TrimSpace(string(data))); err != nil && !errors.Is(err, ErrExpired) {
		return err
	}
	return nil
}

// Save writes the current token to path with owner-only permissions. When
// signed out the file is removed.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("session: remove %s: %w", path, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", path, err)
	}
	return nil
}
