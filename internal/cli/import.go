package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/repo"
)

// NewImportCmd bulk-imports questions from a delimited text file.
func NewImportCmd(configPath *string) *cobra.Command {
	var bundleID string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import semicolon-delimited questions into a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bundleID == "" {
				return fmt.Errorf("--bundle is required")
			}
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := repo.NewBundleRepository(store).GetByID(ctx, bundleID); err != nil {
				return err
			}

			imported, skipped, err := repo.NewQuizRepository(store).ImportText(ctx, string(text), bundleID)
			if err != nil {
				return err
			}

			users := repo.NewUserRepository(store)
			user, err := users.Get(ctx)
			if err != nil {
				return err
			}
			user.UploadedQuizCount += imported
			if err := users.Update(ctx, user); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d quiz(zes) into %s\n", imported, bundleID)
			for _, block := range skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped %s\n", block)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bundleID, "bundle", "", "target bundle ID")
	return cmd
}
