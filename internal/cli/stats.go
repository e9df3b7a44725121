package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedrec/config"
	"feedrec/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector store statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	dbPath := config.StoreDBPath(GetRootDir())

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No store found. Run 'feedrec upsert' or 'feedrec import' first.")
		return nil
	}

	st, err := store.NewBoltVectorStore(dbPath, cfg.Store.Dimension)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	stats := st.Stats()
	fmt.Printf("Store:     %s\n", dbPath)
	fmt.Printf("Items:     %d\n", stats.Count)
	fmt.Printf("Dimension: %d\n", stats.Dimension)
	fmt.Printf("Encoder:   %s (%s)\n", cfg.Encoder.Model, cfg.Encoder.Provider)
	return nil
}
