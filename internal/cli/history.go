package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/repo"
)

// NewHistoryCmd prints a bundle's practice history, most recent first.
func NewHistoryCmd(configPath *string) *cobra.Command {
	var bundleID string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a bundle's practice history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bundleID == "" {
				return fmt.Errorf("--bundle is required")
			}
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := repo.NewHistoryRepository(store).GetByBundleID(ctx, bundleID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no practice sessions recorded")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  answered %d, correct %d, incorrect %d\n",
					record.CreatedAt.Format("2006-01-02 15:04"),
					record.AnsweredCount, record.CorrectAnsweredCount, record.IncorrectAnsweredCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bundleID, "bundle", "", "bundle ID")
	return cmd
}
