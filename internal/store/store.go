// Package store holds the single key-value slot the task list persists to.
package store

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultKey is the slot the task list lives under.
const DefaultKey = "todo.tasks"

// ErrNotFound is returned (wrapped) by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Store reads and replaces whole values by key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Memory is a map-backed Store. The zero value is ready to use.
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (s *Memory) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *Memory) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}
