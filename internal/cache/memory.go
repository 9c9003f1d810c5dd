package cache

import (
	"bytes"
	"io"
	"sync"

	tcerrors "github.com/glitchwizard/tcore/internal/errors"
)

// Memory is an in-memory Backend, suitable for tests and the CLI demo
// command. It is not content-addressed in any persisted sense — it is
// simply a concurrency-safe map — since a real content-addressed store
// is an out-of-scope collaborator.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// GetStream implements Backend.
func (m *Memory) GetStream(key string) (io.ReadCloser, error) {
	v, ok, err := m.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tcerrors.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(v)), nil
}

// GetBlob implements Backend.
func (m *Memory) GetBlob(key string) ([]byte, error) {
	v, ok, err := m.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, tcerrors.ErrNotFound
	}
	return v, nil
}

// Set implements Backend.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(value))
	copy(out, value)
	m.items[key] = out
	return nil
}
