package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"slices"
	"sync"
)

// MemoryObjectStorage keeps objects in a map, for tests of code that
// uploads snapshots
type MemoryObjectStorage struct {
	mu      sync.Mutex
	prefix  string
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage(prefix string) *MemoryObjectStorage {
	return &MemoryObjectStorage{prefix: prefix, objects: make(map[string][]byte)}
}

var _ ObjectUploader = (*MemoryObjectStorage)(nil)

// Upload reads body fully and stores it
func (m *MemoryObjectStorage) Upload(_ context.Context, key string, body io.ReadSeeker, _ int64, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

// ObjectExists reports whether key was uploaded
func (m *MemoryObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

// ListKeys returns the stored keys in order
func (m *MemoryObjectStorage) ListKeys(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Key joins the prefix and name
func (m *MemoryObjectStorage) Key(name string) string {
	if m.prefix == "" {
		return name
	}
	return path.Join(m.prefix, name)
}

// Object returns a stored object
func (m *MemoryObjectStorage) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}
