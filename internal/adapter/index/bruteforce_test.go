package index

import (
	"errors"
	"testing"

	"feedrec/internal/domain"
)

func unit(x, y, z float32) []float32 {
	return domain.Normalize([]float32{x, y, z})
}

func TestSearchOrdersByInnerProduct(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(1, unit(1, 0, 0))
	idx.Add(2, unit(1, 1, 0))
	idx.Add(3, unit(0, 0, 1))

	results, err := idx.Search(unit(1, 0, 0), 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ID != 1 || results[1].ID != 2 || results[2].ID != 3 {
		t.Errorf("unexpected order: %+v", results)
	}
	if results[0].Score < results[1].Score || results[1].Score < results[2].Score {
		t.Errorf("scores not descending: %+v", results)
	}
}

func TestSearchClampsK(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(1, unit(1, 0, 0))
	idx.Add(2, unit(0, 1, 0))

	results, err := idx.Search(unit(1, 0, 0), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := NewBruteForce(3)

	_, err := idx.Search(unit(1, 0, 0), 5)
	if !errors.Is(err, domain.ErrEmptyStore) {
		t.Errorf("expected ErrEmptyStore, got %v", err)
	}
}

func TestSearchDimensionMismatch(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(1, unit(1, 0, 0))

	_, err := idx.Search([]float32{1, 0}, 1)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestIncrementalAddRemove(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(1, unit(1, 0, 0))
	idx.Add(2, unit(0, 1, 0))
	idx.Remove(1)

	results, err := idx.Search(unit(1, 0, 0), 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.ID == 1 {
			t.Error("removed id still returned by search")
		}
	}
	if idx.Len() != 1 {
		t.Errorf("expected 1 indexed vector, got %d", idx.Len())
	}
}

func TestVersionIncrementsOnMutation(t *testing.T) {
	idx := NewBruteForce(3)

	v0 := idx.Version()
	idx.Add(1, unit(1, 0, 0))
	v1 := idx.Version()
	idx.Remove(1)
	v2 := idx.Version()
	idx.Rebuild([]int64{2}, [][]float32{unit(0, 1, 0)})
	v3 := idx.Version()

	if !(v0 < v1 && v1 < v2 && v2 < v3) {
		t.Errorf("version not monotonic: %d %d %d %d", v0, v1, v2, v3)
	}
}

func TestRebuildReplacesContents(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(1, unit(1, 0, 0))

	idx.Rebuild([]int64{2, 3}, [][]float32{unit(0, 1, 0), unit(0, 0, 1)})

	results, err := idx.Search(unit(0, 1, 0), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after rebuild, got %d", len(results))
	}
	if results[0].ID != 2 {
		t.Errorf("expected id 2 first, got %d", results[0].ID)
	}
	for _, r := range results {
		if r.ID == 1 {
			t.Error("stale id survived rebuild")
		}
	}
}

func TestSearchDeterministicOnTies(t *testing.T) {
	idx := NewBruteForce(3)
	idx.Add(5, unit(0, 1, 0))
	idx.Add(2, unit(0, 0, 1))

	// Both score 0 against the query; order falls back to id.
	results, err := idx.Search(unit(1, 0, 0), 2)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].ID != 2 || results[1].ID != 5 {
		t.Errorf("tie-break not deterministic: %+v", results)
	}
}
