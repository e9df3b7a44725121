package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"feedrec/config"
	"feedrec/internal/adapter/encoder"
	"feedrec/internal/adapter/index"
	"feedrec/internal/adapter/store"
	"feedrec/internal/domain"
	"feedrec/internal/usecase"
)

// Benchmarks recommendation latency against a populated store: takes a
// few stored items as a synthetic "liked" history and times repeated
// recommend calls.
func main() {
	dir := flag.String("dir", ".", "Data directory holding the store")
	topK := flag.Int("k", 10, "Number of recommendations")
	iterations := flag.Int("n", 100, "Number of recommend calls to time")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := store.NewBoltVectorStore(config.StoreDBPath(*dir), cfg.Store.Dimension)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	stats := st.Stats()
	if stats.Count == 0 {
		fmt.Fprintln(os.Stderr, "Store is empty. Run 'feedrec import' first.")
		os.Exit(1)
	}

	agg := usecase.NewInterestAggregator(st,
		cfg.Recommend.DecayLambda,
		cfg.Recommend.ActionWeights,
		cfg.Recommend.DefaultActionWeight)
	rec := usecase.NewRecommender(encoder.NewMockEncoder(stats.Dimension), st, index.NewBruteForce(stats.Dimension), agg)

	fmt.Println("RECOMMENDATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Items:     %d\n", stats.Count)
	fmt.Printf("Dimension: %d\n", stats.Dimension)
	fmt.Println()

	ids, _ := st.Snapshot()
	now := float64(time.Now().Unix())
	history := make([]domain.Interaction, 0, 3)
	for i := 0; i < len(ids) && i < 3; i++ {
		history = append(history, domain.Interaction{
			ItemID:    ids[i],
			Action:    "like",
			Timestamp: now - float64(i)*3600,
		})
	}

	ctx := context.Background()

	results, err := rec.Recommend(ctx, history, *topK)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for i := 0; i < *iterations; i++ {
		if _, err := rec.Recommend(ctx, history, *topK); err != nil {
			fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("History:   %d interactions\n", len(history))
	fmt.Printf("Top %d:\n", *topK)
	for i, id := range results {
		fmt.Printf("  %2d. item %d\n", i+1, id)
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%d recommend calls in %s (%.2fms avg)\n",
		*iterations, elapsed.Round(time.Millisecond),
		float64(elapsed.Microseconds())/float64(*iterations)/1000)
}
