package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quiz-practice-service/internal/app"
	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/repo"
)

// NewPracticeCmd runs an interactive practice session on stdin/stdout.
func NewPracticeCmd(configPath *string) *cobra.Command {
	var (
		bundleID string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Practice a bundle's quizzes",
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

			service := app.NewPracticeService(
				repo.NewQuizRepository(store),
				repo.NewHistoryRepository(store),
				repo.NewUserRepository(store),
			)
			return runPractice(cmd, service, bundleID, count)
		},
	}
	cmd.Flags().StringVar(&bundleID, "bundle", "", "bundle ID")
	cmd.Flags().IntVar(&count, "count", 10, "number of questions")
	return cmd
}

func runPractice(cmd *cobra.Command, service *app.PracticeService, bundleID string, count int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	session := app.NewSession(bundleID, count)

	for !session.Done() {
		quiz, err := service.Next(ctx, session)
		if err != nil {
			if errors.Is(err, domain.ErrNoCandidates) {
				fmt.Fprintln(out, "no more quizzes in this bundle")
				break
			}
			return err
		}

		fmt.Fprintf(out, "\n[%d/%d] %s\n", session.Answered+1, count, quiz.Question)
		for i, answer := range quiz.Answers {
			fmt.Fprintf(out, "  %c. %s\n", 'A'+i, answer.Content)
		}
		fmt.Fprint(out, "answer (letters, ? for hint, q to quit): ")

		selected, usedHint, quit := readSelection(scanner, out, quiz)
		if quit {
			break
		}

		result, err := service.Check(ctx, session, quiz.ID, selected, usedHint)
		if err != nil {
			return err
		}
		if result.Correct {
			fmt.Fprintln(out, "correct!")
		} else {
			fmt.Fprintf(out, "incorrect, the answer was %s\n", letterLabels(quiz, result.CorrectAnswers))
		}
	}

	if session.Answered == 0 {
		return nil
	}
	record, err := service.Finish(ctx, session)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsession finished: %d answered, %d correct, %d incorrect\n",
		record.AnsweredCount, record.CorrectAnsweredCount, record.IncorrectAnsweredCount)
	return nil
}

// readSelection reads one answer line, serving hints until the user commits
// to letters or quits.
func readSelection(scanner *bufio.Scanner, out io.Writer, quiz domain.Quiz) (selected []string, usedHint, quit bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "q":
			return nil, usedHint, true
		case line == "?":
			usedHint = true
			fmt.Fprintf(out, "hint: %d answer(s) are correct. answer: ", len(quiz.CorrectAnswers))
		case line == "":
			fmt.Fprint(out, "answer: ")
		default:
			return lettersToIDs(line, quiz), usedHint, false
		}
	}
	return nil, usedHint, true
}

// lettersToIDs maps an input like "a" or "A C" onto answer IDs by position.
func lettersToIDs(line string, quiz domain.Quiz) []string {
	var ids []string
	for _, field := range strings.FieldsFunc(strings.ToUpper(line), func(r rune) bool {
		return r == ' ' || r == ','
	}) {
		if len(field) != 1 {
			continue
		}
		index := int(field[0] - 'A')
		if index >= 0 && index < len(quiz.Answers) {
			ids = append(ids, quiz.Answers[index].ID)
		}
	}
	return ids
}

// letterLabels renders correct-answer IDs back into their display letters.
func letterLabels(quiz domain.Quiz, ids []string) string {
	correct := make(map[string]bool, len(ids))
	for _, id := range ids {
		correct[id] = true
	}
	var letters []string
	for i, answer := range quiz.Answers {
		if correct[answer.ID] {
			letters = append(letters, string(rune('A'+i)))
		}
	}
	return strings.Join(letters, ", ")
}
