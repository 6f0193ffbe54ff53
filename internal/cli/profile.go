package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/repo"
)

// NewProfileCmd shows or edits the local profile.
func NewProfileCmd(configPath *string) *cobra.Command {
	var name, quote string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the local profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := openStore(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			users := repo.NewUserRepository(store)
			user, err := users.Get(ctx)
			if err != nil {
				return err
			}

			if name != "" || quote != "" {
				if name != "" {
					user.Name = name
				}
				if quote != "" {
					user.Quote = quote
				}
				if err := users.Update(ctx, user); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s", user.Name)
			if user.Quote != "" {
				fmt.Fprintf(out, " %q", user.Quote)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "score:            %d\n", user.Score)
			fmt.Fprintf(out, "uploaded quizzes: %d\n", user.UploadedQuizCount)
			fmt.Fprintf(out, "answered:         %d (%d correct, %d incorrect)\n",
				user.AnsweredQuizCount, user.CorrectAnswerCount, user.IncorrectAnswerCount)
			fmt.Fprintf(out, "wrath:            %d (top per quiz: %d)\n", user.WrathCount, user.TopWrathPerQuizCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "set the display name")
	cmd.Flags().StringVar(&quote, "quote", "", "set the profile quote")
	return cmd
}
