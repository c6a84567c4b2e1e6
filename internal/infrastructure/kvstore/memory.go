// Package kvstore contiene los adaptadores clave-valor locales (memoria y archivos).
package kvstore

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*Memory)(nil)
	_ repository.BatchWriter   = (*Memory)(nil)
)

// Memory store volátil para tests y STORAGE_DRIVER=memory.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory construye un store vacío.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = slices.Clone(value)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// SetBatch escribe todas las entradas bajo un mismo lock.
func (m *Memory) SetBatch(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.entries[k] = slices.Clone(v)
	}
	return nil
}
