package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/repo"
)

// NewBundleCmd groups the bundle CRUD subcommands.
func NewBundleCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage quiz bundles",
	}
	cmd.AddCommand(newBundleListCmd(configPath))
	cmd.AddCommand(newBundleAddCmd(configPath))
	cmd.AddCommand(newBundleDeleteCmd(configPath))
	return cmd
}

func newBundleListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bundles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			bundles := repo.NewBundleRepository(store)
			quizzes := repo.NewQuizRepository(store)

			all, err := bundles.GetAll(ctx)
			if err != nil {
				return err
			}
			for _, bundle := range all {
				count, err := quizzes.CountByBundleID(ctx, bundle.ID)
				if err != nil {
					return err
				}
				marker := ""
				if bundle.IsPreset {
					marker = " [preset]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s%s  (%d quizzes)\n", bundle.ID, bundle.Name, marker, count)
			}
			return nil
		},
	}
}

func newBundleAddCmd(configPath *string) *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			bundle, err := repo.NewBundleRepository(store).Add(ctx, domain.QuizBundle{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created bundle %s (%s)\n", bundle.Name, bundle.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "bundle name")
	cmd.Flags().StringVar(&description, "description", "", "bundle description")
	return cmd
}

func newBundleDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bundle-id>",
		Short: "Delete a bundle and all of its quizzes, counters, and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			bundles := repo.NewBundleRepository(store)
			bundle, err := bundles.GetByID(ctx, args[0])
			if err != nil {
				if errors.Is(err, domain.ErrBundleNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "bundle %s not found, nothing deleted\n", args[0])
					return nil
				}
				return err
			}
			if bundle.IsPreset {
				return fmt.Errorf("bundle %s is a preset and cannot be deleted", bundle.ID)
			}
			if err := bundles.Delete(ctx, bundle.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted bundle %s\n", bundle.ID)
			return nil
		},
	}
}
