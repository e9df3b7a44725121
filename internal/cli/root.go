package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedrec/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "feedrec",
	Short: "Content recommendation engine over embedded item vectors",
	Long: `feedrec embeds content items into unit vectors, keeps them in a
persisted vector store, and recommends unseen items against a
time-decayed, action-weighted aggregate of a user's interaction history.

Example usage:
  feedrec upsert --id 42 --text "Golden retriever grooming tips"
  feedrec recommend --history history.json --top-k 5
  feedrec import ./content        # Bulk-import a content directory`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./feedrec.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "data directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
