package kvstore

import (
	"context"
	"sync"
)

// MemoryStore holds values for the lifetime of the process only.
type MemoryStore struct {
	mtx    sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}

	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.values[key] = copied
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.values, key)
	return nil
}
