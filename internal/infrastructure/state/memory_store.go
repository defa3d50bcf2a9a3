// Package state implementa repository.StateStore: estado serializado del motor de
// impresión (ajustes de rasterizado por usuario y repartos de bultos por documento).
package state

import (
	"context"
	"sync"

	"github.com/jhoicas/Inventario-print/internal/domain/repository"
)

var _ repository.StateStore = (*MemoryStore)(nil)

// MemoryStore almacén en memoria para una sola instancia y para tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get devuelve una copia del valor, o (nil, nil) si la clave no existe.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Set guarda una copia del valor.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}
