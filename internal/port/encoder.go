package port

import "context"

// Encoder maps content text to fixed-dimension unit vectors.
type Encoder interface {
	// Embed generates one unit-normalized vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
