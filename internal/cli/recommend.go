package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"feedrec/internal/domain"
)

var (
	historyFile   string
	recommendTopK int
	recommendJSON bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend unseen items for an interaction history",
	Long: `Recommend items ranked by similarity to the aggregate of the given
interaction history. Items that appear in the history are excluded.

The history is a JSON array of interactions:
  [{"id": 42, "action": "like", "timestamp": 1717576000}]

Examples:
  feedrec recommend --history history.json --top-k 5
  cat history.json | feedrec recommend --history - --json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().StringVar(&historyFile, "history", "", "history JSON file, or - for stdin (required)")
	recommendCmd.Flags().IntVarP(&recommendTopK, "top-k", "k", 0, "number of recommendations (default from config)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output as JSON")
	recommendCmd.MarkFlagRequired("history")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	history, err := readHistory(historyFile)
	if err != nil {
		return err
	}

	cfg := GetConfig()
	topK := cfg.Recommend.TopK
	if recommendTopK > 0 {
		topK = recommendTopK
	}

	rec, st, err := openEngine(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := rec.Recommend(cmd.Context(), history, topK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyStore) {
			fmt.Println("No recommendations available: the store is empty.")
			return nil
		}
		return err
	}

	if recommendJSON {
		out := struct {
			Recommendations []int64 `json:"recommendations"`
		}{Recommendations: ids}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(ids) == 0 {
		fmt.Println("No unseen items to recommend.")
		return nil
	}
	for i, id := range ids {
		fmt.Printf("%2d. item %d\n", i+1, id)
	}
	return nil
}

func readHistory(path string) ([]domain.Interaction, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var history []domain.Interaction
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return history, nil
}
