package prefs

import (
	"context"
	"maps"
	"sync"
)

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	paths map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{paths: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, system string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[system]
	return p, ok, nil
}

func (s *Memory) Set(_ context.Context, system, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[system] = path
	return nil
}

func (s *Memory) Delete(_ context.Context, system string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.paths, system)
	return nil
}

func (s *Memory) All(context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.paths), nil
}

func (s *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
