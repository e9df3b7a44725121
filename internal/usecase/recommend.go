package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"feedrec/internal/domain"
	"feedrec/internal/port"
)

// Recommender orchestrates encoder, vector store and similarity index.
// It is the single logical owner of the store/index pair: structural
// mutations are serialized behind mu, and the index is only touched
// after the corresponding store mutation has persisted. Recommend calls
// run lock-free against the index's stable view.
//
// There are no package-level singletons; construct one Recommender and
// hand it to whatever transport fronts it.
type Recommender struct {
	mu sync.Mutex

	encoder    port.Encoder
	store      port.VectorStore
	index      port.SimilarityIndex
	aggregator *InterestAggregator
}

// NewRecommender builds the index from the store's current snapshot so
// a freshly loaded store is immediately queryable.
func NewRecommender(enc port.Encoder, store port.VectorStore, idx port.SimilarityIndex, agg *InterestAggregator) *Recommender {
	idx.Rebuild(store.Snapshot())
	return &Recommender{
		encoder:    enc,
		store:      store,
		index:      idx,
		aggregator: agg,
	}
}

// Upsert embeds text and installs it under id. Create rejects an
// existing id with domain.ErrDuplicateID; update removes any previous
// entry first (an absent one is tolerated, so update doubles as
// create-if-missing). The encoder call happens before the mutation
// lock is taken: a slow or failed encode never blocks other writers,
// and a failed encode leaves the store untouched.
func (r *Recommender) Upsert(ctx context.Context, id int64, text string, action domain.UpsertAction) error {
	vectors, err := r.encoder.Embed(ctx, []string{text})
	if err != nil {
		return fmt.Errorf("failed to encode item %d: %w", id, err)
	}
	if len(vectors) != 1 {
		return fmt.Errorf("encoder returned %d vectors for item %d", len(vectors), id)
	}
	vec := domain.Normalize(vectors[0])

	r.mu.Lock()
	defer r.mu.Unlock()

	if action == domain.UpsertUpdate {
		if err := r.store.Remove(id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		r.index.Remove(id)
	}

	if err := r.store.Append(id, vec); err != nil {
		return err
	}
	r.index.Add(id, vec)
	return nil
}

// Delete removes id from store and index. Propagates
// domain.ErrNotFound; the caller decides whether that is an error.
func (r *Recommender) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Remove(id); err != nil {
		return err
	}
	r.index.Remove(id)
	return nil
}

// Recommend returns up to topK item ids ordered by descending
// similarity to the history's aggregate interest vector, excluding
// every id that appears in the history. The index is over-fetched by
// the size of the seen set, so filtering can never starve the result;
// a short or empty list just means the store is small or fully seen.
// An empty store surfaces domain.ErrEmptyStore.
func (r *Recommender) Recommend(_ context.Context, history []domain.Interaction, topK int) ([]int64, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", topK)
	}

	userVec, err := r.aggregator.UserVector(history)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(history))
	for _, ev := range history {
		seen[ev.ItemID] = struct{}{}
	}

	candidates, err := r.index.Search(userVec, topK+len(seen))
	if err != nil {
		return nil, err
	}

	recommendations := make([]int64, 0, topK)
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		recommendations = append(recommendations, c.ID)
		if len(recommendations) == topK {
			break
		}
	}
	return recommendations, nil
}

// Recover reloads the store from its persisted snapshot and rebuilds
// the index from it. The store is authoritative; this is the repair
// path for any suspected divergence.
func (r *Recommender) Recover(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Reload(); err != nil {
		return fmt.Errorf("failed to reload store: %w", err)
	}
	r.index.Rebuild(r.store.Snapshot())
	return nil
}

// Stats exposes store size and dimension for observability.
func (r *Recommender) Stats() domain.StoreStats {
	return r.store.Stats()
}
