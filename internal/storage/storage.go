// Package storage persists named state snapshots between runs.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the durable blob port used by the state containers. Each blob is
// a full serialized snapshot keyed by name and rewritten on every mutation.
type Storage interface {
	Load(name string) ([]byte, bool, error)
	Save(name string, data []byte) error
	Delete(name string) error
}

// File stores each blob as <dir>/<name>.json.
type File struct {
	dir string
}

// NewFile returns a file-backed Storage rooted at dir. The directory is
// created lazily on first save.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Load reads a blob. A missing file is not an error; ok is false.
func (f *File) Load(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: load %s: %w", name, err)
	}
	return data, true, nil
}

// Save writes a blob atomically via a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot.
func (f *File) Save(name string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir %s: %w", f.dir, err)
	}
	tmp, err := os.CreateTemp(f.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", name, err)
	}
	if err := os.Rename(tmpName, f.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", name, err)
	}
	return nil
}

// Delete removes a blob. Deleting a missing blob is a no-op.
func (f *File) Delete(name string) error {
	err := os.Remove(f.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}

// Memory is the in-process Storage double used in tests.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte

	// SaveErr, when set, is returned by Save to exercise persistence
	// failure paths.
	SaveErr error
}

// NewMemory returns an empty in-memory Storage.
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

func (s *Memory) Load(name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.m[name]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (s *Memory) Save(name string, data []byte) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.m[name] = cp
	return nil
}

func (s *Memory) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, name)
	return nil
}
