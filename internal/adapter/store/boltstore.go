package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"

	"feedrec/internal/domain"
)

var (
	bucketStore = []byte("store")
	keyIDs      = []byte("ids")
	keyVectors  = []byte("vectors")
)

// BoltVectorStore is the authoritative id -> embedding mapping, held in
// memory as two parallel arrays and persisted to BoltDB after every
// structural mutation. A restart reloads the last persisted snapshot.
//
// An id -> position map is maintained alongside the arrays so lookup and
// removal do not linear-scan.
type BoltVectorStore struct {
	db        *bbolt.DB
	dimension int

	mu   sync.RWMutex
	ids  []int64
	vecs [][]float32
	pos  map[int64]int
}

// NewBoltVectorStore opens (or creates) the store at path and loads the
// persisted snapshot into memory. A corrupt snapshot fails loudly here
// rather than degrading at query time.
func NewBoltVectorStore(path string, dimension int) (*BoltVectorStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketStore)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store bucket: %w", err)
	}

	s := &BoltVectorStore{
		db:        db,
		dimension: dimension,
		pos:       make(map[int64]int),
	}

	if err := s.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load vector store: %w", err)
	}

	return s, nil
}

// load replaces the in-memory state with the persisted snapshot.
// Caller must hold the write lock (or be the constructor).
func (s *BoltVectorStore) load() error {
	var ids []int64
	var vecs [][]float32

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketStore)
		if b == nil {
			return nil
		}

		if data := b.Get(keyIDs); data != nil {
			if err := json.Unmarshal(data, &ids); err != nil {
				return fmt.Errorf("corrupt ids array: %w", err)
			}
		}
		if data := b.Get(keyVectors); data != nil {
			if err := json.Unmarshal(data, &vecs); err != nil {
				return fmt.Errorf("corrupt vectors array: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(ids) != len(vecs) {
		return fmt.Errorf("corrupt snapshot: %d ids vs %d vectors", len(ids), len(vecs))
	}

	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		if len(vecs[i]) != s.dimension {
			return fmt.Errorf("item %d: %w: expected %d, got %d",
				id, domain.ErrDimensionMismatch, s.dimension, len(vecs[i]))
		}
		if !domain.IsUnit(vecs[i]) {
			return fmt.Errorf("item %d: stored vector is not unit length (norm=%f)",
				id, domain.Norm(vecs[i]))
		}
		if _, dup := pos[id]; dup {
			return fmt.Errorf("item %d: %w in persisted snapshot", id, domain.ErrDuplicateID)
		}
		pos[id] = i
	}

	s.ids = ids
	s.vecs = vecs
	s.pos = pos
	return nil
}

// persist writes both parallel arrays in a single transaction.
// Caller must hold the write lock.
func (s *BoltVectorStore) persist() error {
	idData, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	vecData, err := json.Marshal(s.vecs)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketStore)
		if b == nil {
			return fmt.Errorf("store bucket not found")
		}
		if err := b.Put(keyIDs, idData); err != nil {
			return err
		}
		return b.Put(keyVectors, vecData)
	})
}

// Append adds id/vec as the last entry and persists. On persist failure
// the in-memory append is rolled back so memory matches the last
// successfully persisted snapshot.
func (s *BoltVectorStore) Append(id int64, vec []float32) error {
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

	if err := s.persist(); err != nil {
		s.ids = s.ids[:len(s.ids)-1]
		s.vecs = s.vecs[:len(s.vecs)-1]
		delete(s.pos, id)
		return fmt.Errorf("failed to persist append of item %d: %w", id, err)
	}
	return nil
}

// Remove deletes id from both arrays at the same position, preserving
// the order of the remaining entries, and persists. Rolled back on
// persist failure.
func (s *BoltVectorStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.pos[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	vec := s.vecs[i]

	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	s.vecs = append(s.vecs[:i], s.vecs[i+1:]...)
	delete(s.pos, id)
	for j := i; j < len(s.ids); j++ {
		s.pos[s.ids[j]] = j
	}

	if err := s.persist(); err != nil {
		s.ids = append(s.ids, 0)
		copy(s.ids[i+1:], s.ids[i:])
		s.ids[i] = id
		s.vecs = append(s.vecs, nil)
		copy(s.vecs[i+1:], s.vecs[i:])
		s.vecs[i] = vec
		for j := i; j < len(s.ids); j++ {
			s.pos[s.ids[j]] = j
		}
		return fmt.Errorf("failed to persist removal of item %d: %w", id, err)
	}
	return nil
}

// Get returns the embedding for id, or false if absent.
func (s *BoltVectorStore) Get(id int64) ([]float32, bool) {
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

// Snapshot returns copies of the parallel id and embedding arrays.
func (s *BoltVectorStore) Snapshot() ([]int64, [][]float32) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, len(s.ids))
	copy(ids, s.ids)

	vecs := make([][]float32, len(s.vecs))
	for i, v := range s.vecs {
		vec := make([]float32, len(v))
		copy(vec, v)
		vecs[i] = vec
	}
	return ids, vecs
}

// Reload restores the in-memory state from the last persisted snapshot.
// Used at startup and as a recovery path.
func (s *BoltVectorStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *BoltVectorStore) Stats() domain.StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.StoreStats{Count: len(s.ids), Dimension: s.dimension}
}

func (s *BoltVectorStore) Close() error {
	return s.db.Close()
}
