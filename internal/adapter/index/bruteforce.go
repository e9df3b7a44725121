package index

import (
	"fmt"
	"sort"
	"sync"

	"feedrec/internal/domain"
)

// BruteForce is an exhaustive inner-product similarity index over a
// derived view of the vector store. It is maintained incrementally
// (Add/Remove) instead of being rebuilt per query; Version lets callers
// detect staleness against the store. Exhaustive scoring is the scaling
// limit here: fine for low thousands of items, replace with an ANN
// structure beyond that.
type BruteForce struct {
	dimension int

	mu      sync.RWMutex
	vecs    map[int64][]float32
	version uint64
}

func NewBruteForce(dimension int) *BruteForce {
	return &BruteForce{
		dimension: dimension,
		vecs:      make(map[int64][]float32),
	}
}

// Search returns up to k results by descending inner product. All
// indexed vectors are unit length, so inner product equals cosine
// similarity; the query is assumed normalized by the caller.
func (x *BruteForce) Search(query []float32, k int) ([]domain.ScoredItem, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if len(query) != x.dimension {
		return nil, fmt.Errorf("query: %w: expected %d, got %d", domain.ErrDimensionMismatch, x.dimension, len(query))
	}
	if len(x.vecs) == 0 {
		return nil, domain.ErrEmptyStore
	}
	if k <= 0 {
		return nil, nil
	}

	results := make([]domain.ScoredItem, 0, len(x.vecs))
	for id, vec := range x.vecs {
		results = append(results, domain.ScoredItem{ID: id, Score: domain.Dot(query, vec)})
	}

	// Tie-break on id so results are deterministic across map iteration.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Add registers or replaces a vector.
func (x *BruteForce) Add(id int64, vec []float32) {
	stored := make([]float32, len(vec))
	copy(stored, vec)

	x.mu.Lock()
	defer x.mu.Unlock()
	x.vecs[id] = stored
	x.version++
}

// Remove drops a vector; removing an absent id is a no-op but still
// bumps the version.
func (x *BruteForce) Remove(id int64) {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.vecs, id)
	x.version++
}

// Rebuild replaces the whole index from a store snapshot. The store is
// authoritative: this is the recovery path whenever store and index
// may have diverged.
func (x *BruteForce) Rebuild(ids []int64, vecs [][]float32) {
	next := make(map[int64][]float32, len(ids))
	for i, id := range ids {
		vec := make([]float32, len(vecs[i]))
		copy(vec, vecs[i])
		next[id] = vec
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.vecs = next
	x.version++
}

// Version increments on every mutation of the index.
func (x *BruteForce) Version() uint64 {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.version
}

// Len returns the number of indexed vectors.
func (x *BruteForce) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vecs)
}
