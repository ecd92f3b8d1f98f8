package jsonstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/tasklist/internal/store"
)

// JSON-backed storage. One human-readable file per key under Dir.
// No locking; fine for a local single-user tool.

const fileExt = ".json"

// Store keeps each key in <Dir>/<key>.json.
type Store struct {
	Dir string
}

// New returns a Store rooted at dir. An empty dir means the working directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return &Store{Dir: dir}, nil
}

// Path returns the file backing key.
func (s *Store) Path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Dir, key+fileExt), nil
}

func (s *Store) Get(key string) ([]byte, error) {
	p, err := s.Path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", p, store.ErrNotFound)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Set replaces the value atomically: write a temp file, then rename over it.
func (s *Store) Set(key string, value []byte) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
