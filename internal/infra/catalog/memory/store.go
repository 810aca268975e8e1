// Package memory implements the archive catalog in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"soundcore/internal/catalog/core"
)

// Store keeps catalog entries in a mutex-guarded map.
type Store struct {
	mu      sync.RWMutex
	entries map[string]core.Entry
}

// New returns an empty in-memory catalog.
func New() *Store {
	return &Store{entries: make(map[string]core.Entry)}
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) Insert(_ context.Context, e core.Entry) error {
	if e.Key == "" {
		return fmt.Errorf("empty catalog key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.Key]; ok {
		return fmt.Errorf("catalog key %s: %w", e.Key, core.ErrExists)
	}
	s.entries[e.Key] = e
	return nil
}

func (s *Store) Get(_ context.Context, key string) (core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return core.Entry{}, fmt.Errorf("catalog key %s: %w", key, core.ErrNotFound)
	}
	return e, nil
}

func (s *Store) List(_ context.Context, f core.Filter) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Entry
	for _, e := range s.entries {
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		if f.Prefix != "" && !strings.HasPrefix(e.Key, f.Prefix) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false, nil
	}
	delete(s.entries, key)
	return true, nil
}

func (s *Store) Close() error { return nil }
