package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"chartdeck/internal/storage"
)

// MemoryStorage is an in-memory storage.StorageClient for tests. Setting Err
// makes every operation fail with it.
type MemoryStorage struct {
	mu     sync.Mutex
	files  map[string][]byte
	Err    error
	Writes int
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

// Close implements storage.StorageClient
func (m *MemoryStorage) Close() error {
	return nil
}

// CreateDir implements storage.StorageClient; directories are implicit
func (m *MemoryStorage) CreateDir(ctx context.Context, dirPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Err
}

// StoreFile implements storage.StorageClient
func (m *MemoryStorage) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.files[filePath] = append([]byte(nil), fileData...)
	m.Writes++
	return nil
}

// GetFile implements storage.StorageClient
func (m *MemoryStorage) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	data, ok := m.files[filePath]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", filePath, storage.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// ListDir implements storage.StorageClient
func (m *MemoryStorage) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	prefix := strings.TrimSuffix(dirPath, "/")
	if prefix != "" {
		prefix += "/"
	}
	seen := make(map[string]bool)
	for name := range m.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if !recursive {
			if i := strings.Index(name[len(prefix):], "/"); i >= 0 {
				name = name[:len(prefix)+i]
			}
		}
		seen[name] = true
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// FileExists implements storage.StorageClient
func (m *MemoryStorage) FileExists(ctx context.Context, filePath string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.files[filePath]
	return ok, nil
}
