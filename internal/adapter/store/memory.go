package store

import (
	"fmt"
	"sync"

	"feedrec/internal/domain"
)

// MemoryVectorStore is a non-persistent VectorStore used by tests and
// by callers that manage durability elsewhere. It keeps the same
// parallel-array layout and snapshot semantics as BoltVectorStore: the
// "persisted" snapshot is an in-process copy taken after each mutation,
// so Reload is a faithful no-op recovery.
type MemoryVectorStore struct {
	dimension int

	mu   sync.RWMutex
	ids  []int64
	vecs [][]float32
	pos  map[int64]int

	snapIDs  []int64
	snapVecs [][]float32
}

func NewMemoryVectorStore(dimension int) *MemoryVectorStore {
	return &MemoryVectorStore{
		dimension: dimension,
		pos:       make(map[int64]int),
	}
}

func (s *MemoryVectorStore) Append(id int64, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(vec) != s.dimension {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrDimensionMismatch, s.dimension, len(vec))
	}
	if _, ok := s.pos[id]; ok {
		return fmt.Errorf("item %d: %w", id, domain.ErrDuplicateID)
	}

	stored := make([]float32, len(vec))
	copy(stored, vec)

	s.ids = append(s.ids, id)
	s.vecs = append(s.vecs, stored)
	s.pos[id] = len(s.ids) - 1
	s.snapshotLocked()
	return nil
}

func (s *MemoryVectorStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.pos[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	s.vecs = append(s.vecs[:i], s.vecs[i+1:]...)
	delete(s.pos, id)
	for j := i; j < len(s.ids); j++ {
		s.pos[s.ids[j]] = j
	}
	s.snapshotLocked()
	return nil
}

func (s *MemoryVectorStore) Get(id int64) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.pos[id]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(s.vecs[i]))
	copy(out, s.vecs[i])
	return out, true
}

func (s *MemoryVectorStore) Snapshot() ([]int64, [][]float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyArrays(s.ids, s.vecs)
}

func (s *MemoryVectorStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids, s.vecs = copyArrays(s.snapIDs, s.snapVecs)
	s.pos = make(map[int64]int, len(s.ids))
	for i, id := range s.ids {
		s.pos[id] = i
	}
	return nil
}

func (s *MemoryVectorStore) Stats() domain.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.StoreStats{Count: len(s.ids), Dimension: s.dimension}
}

func (s *MemoryVectorStore) Close() error { return nil }

func (s *MemoryVectorStore) snapshotLocked() {
	s.snapIDs, s.snapVecs = copyArrays(s.ids, s.vecs)
}

func copyArrays(ids []int64, vecs [][]float32) ([]int64, [][]float32) {
	outIDs := make([]int64, len(ids))
	copy(outIDs, ids)

	outVecs := make([][]float32, len(vecs))
	for i, v := range vecs {
		vec := make([]float32, len(v))
		copy(vec, v)
		outVecs[i] = vec
	}
	return outIDs, outVecs
}
