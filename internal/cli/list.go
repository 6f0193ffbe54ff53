package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/repo"
)

// NewListCmd pages through a bundle's quizzes with search and sorting.
func NewListCmd(configPath *string) *cobra.Command {
	var (
		bundleID string
		opts     repo.ListOptions
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a bundle's quizzes",
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

			page, total, err := repo.NewQuizRepository(store).GetByBundleID(ctx, bundleID, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d match(es)\n", total)
			for _, quiz := range page {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (answered %d, correct %d, incorrect %d, wrath %d)\n",
					quiz.ID, quiz.Question, quiz.AnsweredCount, quiz.CorrectAnsweredCount, quiz.IncorrectAnsweredCount, quiz.WrathCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bundleID, "bundle", "", "bundle ID")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 10, "items per page")
	cmd.Flags().StringVar(&opts.SortBy, "sort", "createdAt", "sort field (createdAt, updatedAt, answeredCount, correctAnsweredCount, incorrectAnsweredCount, wrathCount)")
	cmd.Flags().StringVar(&opts.Order, "order", "desc", "sort order (asc or desc)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "accent-insensitive text filter")
	return cmd
}
