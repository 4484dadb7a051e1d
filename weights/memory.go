package weights

import "sync"

// MemoryStore keeps the vector in memory, for tests and throwaway agents.
type MemoryStore struct {
	mu    sync.Mutex
	v     Vector
	saves int
}

func NewMemoryStore(initial Vector) *MemoryStore {
	return &MemoryStore{v: initial.Clone()}
}

func (s *MemoryStore) Load() (Vector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.v == nil {
		return nil, ErrNotFound
	}
	return s.v.Clone(), nil
}

func (s *MemoryStore) Save(v Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v = v.Clone()
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}
