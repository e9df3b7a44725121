package usecase

import (
	"math"

	"feedrec/internal/domain"
	"feedrec/internal/port"
)

// InterestAggregator folds a user's interaction history into a single
// unit vector of instantaneous interest. Stateless: recomputed per
// request from the supplied history.
type InterestAggregator struct {
	store         port.VectorStore
	lambda        float64
	weights       map[string]float64
	defaultWeight float64
}

func NewInterestAggregator(store port.VectorStore, lambda float64, weights map[string]float64, defaultWeight float64) *InterestAggregator {
	if defaultWeight <= 0 {
		defaultWeight = 1.0
	}
	return &InterestAggregator{
		store:         store,
		lambda:        lambda,
		weights:       weights,
		defaultWeight: defaultWeight,
	}
}

// UserVector computes the weighted, time-decayed mean of the embeddings
// behind the supplied history. Each event contributes
// actionWeight * exp(-lambda * ageHours), where age is measured against
// the most recent event in the history, not the wall clock: the same
// history always scores the same way. Events whose item is unknown are
// skipped. If nothing in the history resolves, the unweighted mean of
// all stored embeddings is used instead; with an empty store that too
// is undefined and domain.ErrEmptyStore is returned.
func (a *InterestAggregator) UserVector(events []domain.Interaction) ([]float32, error) {
	referenceTime := 0.0
	for _, ev := range events {
		if ev.Timestamp > referenceTime {
			referenceTime = ev.Timestamp
		}
	}

	var sum []float32
	var totalWeight float64

	for _, ev := range events {
		vec, ok := a.store.Get(ev.ItemID)
		if !ok {
			continue
		}

		ageHours := (referenceTime - ev.Timestamp) / 3600
		weight := a.actionWeight(ev.Action) * math.Exp(-a.lambda*ageHours)

		if sum == nil {
			sum = make([]float32, len(vec))
		}
		for i, x := range vec {
			sum[i] += float32(weight) * x
		}
		totalWeight += weight
	}

	if totalWeight == 0 {
		return a.storeMean()
	}

	for i := range sum {
		sum[i] /= float32(totalWeight)
	}
	if domain.Norm(sum) == 0 {
		// Opposing embeddings cancelled out; nothing to rank by.
		return a.storeMean()
	}
	return domain.Normalize(sum), nil
}

func (a *InterestAggregator) actionWeight(action string) float64 {
	if w, ok := a.weights[action]; ok && w > 0 {
		return w
	}
	return a.defaultWeight
}

// storeMean is the cold-start fallback: the unweighted mean of every
// embedding in the store, re-normalized.
func (a *InterestAggregator) storeMean() ([]float32, error) {
	_, vecs := a.store.Snapshot()
	if len(vecs) == 0 {
		return nil, domain.ErrEmptyStore
	}

	sum := make([]float32, len(vecs[0]))
	for _, vec := range vecs {
		for i, x := range vec {
			sum[i] += x
		}
	}
	for i := range sum {
		sum[i] /= float32(len(vecs))
	}
	if domain.Norm(sum) == 0 {
		sum[0] = 1
	}
	return domain.Normalize(sum), nil
}
