package mocks

import (
	"fmt"
	"io/fs"
	"maps"
	"sync"
)

// Store implements ci.FileStore in memory.
type Store struct {
	mu       sync.Mutex
	files    map[string]string
	readErr  error
	writeErr error
	written  []string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{files: make(map[string]string)}
}

// WithFile seeds the store with a file.
func (s *Store) WithFile(path, content string) *Store {
	s.mu.Lock()
	s.files[path] = content
	s.mu.Unlock()
	return s
}

// WithReadError makes every ReadText fail with err.
func (s *Store) WithReadError(err error) *Store {
	s.readErr = err
	return s
}

// WithWriteError makes every WriteText fail with err.
func (s *Store) WithWriteError(err error) *Store {
	s.writeErr = err
	return s
}

// ReadText returns an error wrapping fs.ErrNotExist for unknown paths,
// like os.ReadFile.
func (s *Store) ReadText(path string) (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

// WriteText stores content at path and records the write.
func (s *Store) WriteText(path, content string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = content
	s.written = append(s.written, path)
	return nil
}

// Test inspection methods

// File returns the content stored at path.
func (s *Store) File(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[path]
	return content, ok
}

// Files returns a copy of every stored file.
func (s *Store) Files() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.files)
}

// Written returns the paths passed to WriteText, in call order.
func (s *Store) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]string, len(s.written))
	copy(result, s.written)
	return result
}
