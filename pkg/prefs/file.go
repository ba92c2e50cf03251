package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store kept in a single JSON object mapping system names to
// paths. Every write rewrites the file.
type File struct {
	mu    sync.RWMutex
	path  string
	paths map[string]string
}

// NewFile opens the store at path, creating its directory. A missing file
// is an empty store.
func NewFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	s := &File{path: path, paths: make(map[string]string)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *File) Path() string { return s.path }

func (s *File) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read prefs: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.paths); err != nil {
		return fmt.Errorf("decode prefs %s: %w", s.path, err)
	}
	if s.paths == nil {
		s.paths = make(map[string]string)
	}
	return nil
}

// save writes the map to a temporary file and renames it over the store.
// The caller holds the write lock.
func (s *File) save() error {
	data, err := json.MarshalIndent(s.paths, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func (s *File) Get(_ context.Context, system string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[system]
	return p, ok, nil
}

func (s *File) Set(_ context.Context, system, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.paths[system]; ok && old == path {
		return nil
	}
	s.paths[system] = path
	return s.save()
}

func (s *File) Delete(_ context.Context, system string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paths[system]; !ok {
		return nil
	}
	delete(s.paths, system)
	return s.save()
}

func (s *File) All(context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.paths), nil
}

func (s *File) Close() error { return nil }

var _ Store = (*File)(nil)
