package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"feedrec/internal/adapter/fs"
	"feedrec/internal/usecase"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Bulk-import a directory of content files",
	Long: `Embed and store every file under the given directory that matches the
configured include/exclude globs. Each file becomes one item with a
stable id derived from its relative path, so re-importing replaces
changed content instead of duplicating it.

Examples:
  feedrec import ./content
  feedrec import .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	rec, st, err := openEngine(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	walker := fs.NewWalker(cfg.Import.Includes, cfg.Import.Excludes)
	importer := usecase.NewImporter(walker, rec, cfg.Import.Concurrency)

	start := time.Now()

	// Progress callbacks arrive from concurrent workers.
	var mu sync.Mutex
	var bar *progressbar.ProgressBar

	result, err := importer.Run(cmd.Context(), path, func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if bar == nil {
			bar = progressbar.Default(int64(total), "importing")
		}
		bar.Set(done)
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nImported %d items (%d files, %d skipped) in %s\n",
		result.Imported, result.Files, result.Skipped, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Store now holds %d items.\n", rec.Stats().Count)
	return nil
}
