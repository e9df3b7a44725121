package cli

import (
	"fmt"
	"time"

	"feedrec/config"
	"feedrec/internal/adapter/encoder"
	"feedrec/internal/adapter/index"
	"feedrec/internal/adapter/store"
	"feedrec/internal/port"
	"feedrec/internal/usecase"
)

// openEngine wires encoder, store, index and aggregator into a
// Recommender according to the loaded config. The returned store must
// be closed by the caller.
func openEngine(cfg *config.Config, dir string) (*usecase.Recommender, *store.BoltVectorStore, error) {
	enc, err := newEncoder(cfg)
	if err != nil {
		return nil, nil, err
	}

	if enc.Dimension() != cfg.Store.Dimension {
		return nil, nil, fmt.Errorf("encoder %s produces %d-dimensional vectors but store is configured for %d",
			enc.ModelName(), enc.Dimension(), cfg.Store.Dimension)
	}

	if err := config.EnsureDataDir(dir); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.NewBoltVectorStore(config.StoreDBPath(dir), cfg.Store.Dimension)
	if err != nil {
		return nil, nil, err
	}

	agg := usecase.NewInterestAggregator(st,
		cfg.Recommend.DecayLambda,
		cfg.Recommend.ActionWeights,
		cfg.Recommend.DefaultActionWeight)

	rec := usecase.NewRecommender(enc, st, index.NewBruteForce(cfg.Store.Dimension), agg)
	return rec, st, nil
}

func newEncoder(cfg *config.Config) (port.Encoder, error) {
	timeout := time.Duration(cfg.Encoder.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cfg.Encoder.Provider {
	case "openai":
		if cfg.Encoder.BaseURL != "" {
			return encoder.NewOpenAICompatibleEncoder(cfg.Encoder.APIKeyEnv, cfg.Encoder.Model, cfg.Encoder.BaseURL, timeout)
		}
		return encoder.NewOpenAIEncoder(cfg.Encoder.APIKeyEnv, cfg.Encoder.Model, timeout)
	case "ollama":
		return encoder.NewOllamaEncoder(cfg.Encoder.Model, cfg.Encoder.BaseURL, timeout)
	case "mock":
		return encoder.NewMockEncoder(cfg.Store.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown encoder provider: %s", cfg.Encoder.Provider)
	}
}
