// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides persisted client state for tripgenie TUI.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/morganforge/tripgenie-tui/internal/util"
)

// ErrNotFound is returned when a key has no stored value.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = errors.New("storage: key not found")

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the low-level key-value persistence interface. Two
// implementations exist: FileBackend for durable state (registered user,
// token, session collections) and MemoryBackend for process-scoped state
// (guest identity), mirroring the localStorage/sessionStorage split of the
// browser original.
type Backend interface {
	// Read returns the value for a key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write stores a value under a key, replacing any previous value.
	Write(key string, data []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys lists all stored keys.
	Keys() ([]string, error)
}

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileBackend stores each key as a JSON file under a base directory.
type FileBackend struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewFileBackend creates a file backend rooted at dir.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileBackend{BaseDir: dir}, nil
}

// Read returns the contents of the key's file.
func (b *FileBackend) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write stores the value atomically.
// RELIABILITY: Atomic write prevents a crash from leaving a half-written
// session collection on disk.
func (b *FileBackend) Write(key string, data []byte) error {
	return util.AtomicWriteFile(b.path(key), data, 0644)
}

// Delete removes the key's file.
func (b *FileBackend) Delete(key string) error {
	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Keys lists all stored keys.
func (b *FileBackend) Keys() ([]string, error) {
	entries, err := os.ReadDir(b.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return keys, nil
}

// path returns the file path for a key.
func (b *FileBackend) path(key string) string {
	return filepath.Join(b.BaseDir, key+".json")
}

// =============================================================================
// MEMORY BACKEND
// =============================================================================

// MemoryBackend stores values in process memory only. State is gone when
// the process exits, which is exactly the lifetime guest identities get.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Read returns the value for a key.
func (b *MemoryBackend) Read(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of the value.
func (b *MemoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	b.values[key] = stored
	return nil
}

// Delete removes a key.
func (b *MemoryBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return nil
}

// Keys lists all stored keys.
func (b *MemoryBackend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	return keys, nil
}
