package store

import (
	"errors"
	"path/filepath"
	"testing"

	"feedrec/internal/domain"
)

func newTestStore(t *testing.T) *BoltVectorStore {
	t.Helper()
	s, err := NewBoltVectorStore(filepath.Join(t.TempDir(), "store.db"), 3)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func unit(x, y, z float32) []float32 {
	return domain.Normalize([]float32{x, y, z})
}

func TestAppendAndGet(t *testing.T) {
	s := newTestStore(t)

	v := unit(1, 0, 0)
	if err := s.Append(1, v); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, ok := s.Get(1)
	if !ok {
		t.Fatal("expected item 1 to be present")
	}
	for i := range v {
		if got[i] != v[i] {
			t.Errorf("vector mismatch at %d: got %f, want %f", i, got[i], v[i])
		}
	}

	stats := s.Stats()
	if stats.Count != 1 || stats.Dimension != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestAppendDimensionMismatch(t *testing.T) {
	s := newTestStore(t)

	err := s.Append(1, []float32{1, 0})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if s.Stats().Count != 0 {
		t.Error("failed append must not mutate the store")
	}
}

func TestAppendDuplicateID(t *testing.T) {
	s := newTestStore(t)

	if err := s.Append(1, unit(1, 0, 0)); err != nil {
		t.Fatal(err)
	}
	err := s.Append(1, unit(0, 1, 0))
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if s.Stats().Count != 1 {
		t.Errorf("expected 1 item after rejected duplicate, got %d", s.Stats().Count)
	}
}

func TestRemoveNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)

	s.Append(1, unit(1, 0, 0))
	s.Append(2, unit(0, 1, 0))
	beforeIDs, beforeVecs := s.Snapshot()

	err := s.Remove(99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	afterIDs, afterVecs := s.Snapshot()
	if len(afterIDs) != len(beforeIDs) {
		t.Fatalf("id count changed: %d -> %d", len(beforeIDs), len(afterIDs))
	}
	for i := range beforeIDs {
		if afterIDs[i] != beforeIDs[i] {
			t.Errorf("id order changed at %d: %d -> %d", i, beforeIDs[i], afterIDs[i])
		}
		for j := range beforeVecs[i] {
			if afterVecs[i][j] != beforeVecs[i][j] {
				t.Errorf("vector %d changed at %d", beforeIDs[i], j)
			}
		}
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	s := newTestStore(t)

	s.Append(1, unit(1, 0, 0))
	s.Append(2, unit(0, 1, 0))
	s.Append(3, unit(0, 0, 1))

	if err := s.Remove(2); err != nil {
		t.Fatal(err)
	}

	ids, _ := s.Snapshot()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("expected [1 3], got %v", ids)
	}

	if _, ok := s.Get(2); ok {
		t.Error("removed item still retrievable")
	}
	if v, ok := s.Get(3); !ok || v[2] != 1 {
		t.Error("position map stale after removal")
	}
}

func TestAppendThenRemoveRestoresPriorState(t *testing.T) {
	s := newTestStore(t)

	s.Append(1, unit(1, 0, 0))
	beforeIDs, _ := s.Snapshot()

	s.Append(2, unit(0, 1, 0))
	if err := s.Remove(2); err != nil {
		t.Fatal(err)
	}

	afterIDs, _ := s.Snapshot()
	if len(afterIDs) != len(beforeIDs) {
		t.Fatalf("expected %d ids, got %d", len(beforeIDs), len(afterIDs))
	}
	for i := range beforeIDs {
		if afterIDs[i] != beforeIDs[i] {
			t.Errorf("id set changed: %v vs %v", beforeIDs, afterIDs)
		}
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")

	s, err := NewBoltVectorStore(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	s.Append(1, unit(1, 0, 0))
	s.Append(2, unit(0, 1, 0))
	s.Remove(1)
	s.Close()

	reopened, err := NewBoltVectorStore(path, 3)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	ids, vecs := reopened.Snapshot()
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2] after reopen, got %v", ids)
	}
	if !domain.IsUnit(vecs[0]) {
		t.Errorf("reloaded vector is not unit length: norm=%f", domain.Norm(vecs[0]))
	}
}

func TestReopenDimensionMismatchFailsLoudly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")

	s, err := NewBoltVectorStore(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	s.Append(1, unit(1, 0, 0))
	s.Close()

	if _, err := NewBoltVectorStore(path, 4); err == nil {
		t.Error("expected load failure when persisted dimension differs from configured")
	}
}

func TestAppendRollsBackOnPersistFailure(t *testing.T) {
	s := newTestStore(t)
	s.Append(1, unit(1, 0, 0))

	// Closing the db makes the next persist fail.
	s.db.Close()

	err := s.Append(2, unit(0, 1, 0))
	if err == nil {
		t.Fatal("expected append to fail once persistence is unavailable")
	}

	ids, _ := s.Snapshot()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("in-memory state not rolled back: %v", ids)
	}
}

func TestRemoveRollsBackOnPersistFailure(t *testing.T) {
	s := newTestStore(t)
	s.Append(1, unit(1, 0, 0))
	s.Append(2, unit(0, 1, 0))

	s.db.Close()

	if err := s.Remove(1); err == nil {
		t.Fatal("expected remove to fail once persistence is unavailable")
	}

	ids, _ := s.Snapshot()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("in-memory state not rolled back: %v", ids)
	}
	if v, ok := s.Get(1); !ok || v[0] != 1 {
		t.Error("rolled-back item not retrievable")
	}
}

func TestReloadRestoresPersistedSnapshot(t *testing.T) {
	s := newTestStore(t)
	s.Append(1, unit(1, 0, 0))
	s.Append(2, unit(0, 1, 0))

	if err := s.Reload(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	ids, _ := s.Snapshot()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected [1 2] after reload, got %v", ids)
	}
}
