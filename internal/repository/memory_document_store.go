package repository

import (
	"context"
	"sync"
)

// MemoryDocumentStore guarda los documentos en memoria; util para tests y el modo STORE_BACKEND=memory.
type MemoryDocumentStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{items: make(map[string][]byte)}
}

func (s *MemoryDocumentStore) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.items[collection+"/"+key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryDocumentStore) Set(_ context.Context, collection, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[collection+"/"+key] = append([]byte(nil), data...)
	return nil
}
