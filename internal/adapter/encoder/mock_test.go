package encoder

import (
	"context"
	"testing"

	"feedrec/internal/domain"
)

func TestMockEncoderDeterministicUnitVectors(t *testing.T) {
	enc := NewMockEncoder(32)

	first, err := enc.Embed(context.Background(), []string{"golden retriever", "parrot"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := enc.Embed(context.Background(), []string{"golden retriever", "parrot"})
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(first))
	}
	for i := range first {
		if len(first[i]) != 32 {
			t.Errorf("vector %d has dimension %d, want 32", i, len(first[i]))
		}
		if !domain.IsUnit(first[i]) {
			t.Errorf("vector %d is not unit length: norm=%f", i, domain.Norm(first[i]))
		}
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("vector %d not deterministic at %d", i, j)
			}
		}
	}
}

func TestMockEncoderEmptyText(t *testing.T) {
	enc := NewMockEncoder(8)

	vectors, err := enc.Embed(context.Background(), []string{""})
	if err != nil {
		t.Fatal(err)
	}
	if !domain.IsUnit(vectors[0]) {
		t.Error("empty text must still produce a unit vector")
	}
}
