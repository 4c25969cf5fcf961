// Package fileblob stores each key as a file in a directory, the local
// single-user analog of browser storage.
package fileblob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"commentbox/internal/errs"
)

// Store persists blobs as files under Dir. Keys are flattened to file names
// (path separators and colons replaced), so distinct keys must not collide
// after flattening.
type Store struct {
	dir string
}

// New constructs a file-backed store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the contents of the file backing key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("key %q: %w", key, errs.ErrBlobNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set writes value to the file backing key. The write goes through a temp
// file and rename so a crash never leaves a truncated blob behind.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *Store) path(key string) string {
	name := strings.NewReplacer("/", "_", ":", "_").Replace(key) + ".json"
	return filepath.Join(s.dir, name)
}
