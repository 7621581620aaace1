package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// InMemory keeps objects in a map. Used in tests.
type InMemory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{objects: make(map[string][]byte)}
}

func (m *InMemory) Put(_ context.Context, key string, obj Object) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, obj.Body); err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[cleaned] = buf.Bytes()
	return cleaned, nil
}

func (m *InMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Get returns the stored bytes and whether the key exists.
func (m *InMemory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}
