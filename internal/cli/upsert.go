package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feedrec/internal/adapter/fs"
	"feedrec/internal/domain"
)

var (
	upsertID     int64
	upsertText   string
	upsertFile   string
	upsertUpdate bool
)

var upsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Embed and store a content item",
	Long: `Embed a content item's text and add it to the vector store.

By default the item must be new; pass --update to replace an existing
item's embedding (an item that does not exist yet is created).

Examples:
  feedrec upsert --id 42 --text "Golden retriever grooming tips"
  feedrec upsert --id 42 --file post.md --update`,
	RunE: runUpsert,
}

func init() {
	rootCmd.AddCommand(upsertCmd)
	upsertCmd.Flags().Int64Var(&upsertID, "id", 0, "item id (required)")
	upsertCmd.Flags().StringVar(&upsertText, "text", "", "content text")
	upsertCmd.Flags().StringVar(&upsertFile, "file", "", "read content text from file")
	upsertCmd.Flags().BoolVar(&upsertUpdate, "update", false, "replace an existing item")
	upsertCmd.MarkFlagRequired("id")
}

func runUpsert(cmd *cobra.Command, args []string) error {
	text := upsertText
	if upsertFile != "" {
		var err error
		text, err = fs.ReadFile(upsertFile)
		if err != nil {
			return fmt.Errorf("failed to read content file: %w", err)
		}
	}
	if text == "" {
		return fmt.Errorf("one of --text or --file is required")
	}

	rec, st, err := openEngine(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	action := domain.UpsertCreate
	if upsertUpdate {
		action = domain.UpsertUpdate
	}

	if err := rec.Upsert(cmd.Context(), upsertID, text, action); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return fmt.Errorf("item %d already exists (use --update to replace it)", upsertID)
		}
		return err
	}

	fmt.Printf("Stored item %d (%d items total)\n", upsertID, rec.Stats().Count)
	return nil
}
