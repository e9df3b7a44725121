package port

import "feedrec/internal/domain"

// VectorStore owns the authoritative id -> embedding mapping. All
// implementations keep ids unique, enforce a fixed dimension, and
// persist after every structural mutation (where persistence applies).
type VectorStore interface {
	// Append adds id with its embedding as the last entry.
	// Fails with domain.ErrDimensionMismatch or domain.ErrDuplicateID.
	Append(id int64, vec []float32) error

	// Remove deletes id and its embedding, preserving the order of the
	// remaining entries. Fails with domain.ErrNotFound.
	Remove(id int64) error

	// Get returns the embedding for id, or false if absent.
	Get(id int64) ([]float32, bool)

	// Snapshot returns copies of the parallel id and embedding arrays.
	Snapshot() ([]int64, [][]float32)

	// Reload restores the store from the last persisted snapshot.
	Reload() error

	Stats() domain.StoreStats

	Close() error
}

// SimilarityIndex answers top-k nearest-neighbor queries over a derived
// view of a VectorStore. Never authoritative: on divergence the store
// wins and the index is rebuilt.
type SimilarityIndex interface {
	// Search returns up to k results ordered by descending inner
	// product. Fails with domain.ErrEmptyStore when the index holds no
	// vectors and domain.ErrDimensionMismatch on a bad query.
	Search(query []float32, k int) ([]domain.ScoredItem, error)

	// Add registers or replaces a vector.
	Add(id int64, vec []float32)

	// Remove drops a vector; absent ids are a no-op.
	Remove(id int64)

	// Rebuild replaces the whole index from a store snapshot.
	Rebuild(ids []int64, vecs [][]float32)

	// Version increments on every mutation of the index.
	Version() uint64
}
