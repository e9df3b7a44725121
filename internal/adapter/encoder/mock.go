package encoder

import (
	"context"

	"feedrec/internal/domain"
)

// MockEncoder derives deterministic unit vectors from the input text.
// Used by tests and offline runs; no network.
type MockEncoder struct {
	dimension int
}

func NewMockEncoder(dimension int) *MockEncoder {
	return &MockEncoder{dimension: dimension}
}

func (e *MockEncoder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, e.dimension)
		for j, r := range text {
			v[(j+int(r))%e.dimension] += float32(r) / 1000.0
		}
		if domain.Norm(v) == 0 {
			v[0] = 1
		}
		vectors[i] = domain.Normalize(v)
	}
	return vectors, nil
}

func (e *MockEncoder) Dimension() int {
	return e.dimension
}

func (e *MockEncoder) ModelName() string {
	return "mock"
}
