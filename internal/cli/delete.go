package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"feedrec/internal/domain"
)

var deleteID int64

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a content item from the store",
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "item id (required)")
	deleteCmd.MarkFlagRequired("id")
}

func runDelete(cmd *cobra.Command, args []string) error {
	rec, st, err := openEngine(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := rec.Delete(cmd.Context(), deleteID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("item %d not found", deleteID)
		}
		return err
	}

	fmt.Printf("Deleted item %d (%d items remaining)\n", deleteID, rec.Stats().Count)
	return nil
}
