package importer

import (
	"fmt"
	"strings"
	"testing"
)

func newTestParser() *Parser {
	n := 0
	return New(WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
}

func TestParseSingleBlock(t *testing.T) {
	text := "Which city is the capital of France?\nA. London\nB. Paris\nC. Berlin\nD. Rome,B;"

	quizzes, skipped := newTestParser().Parse(text, "b1")
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(quizzes))
	}

	quiz := quizzes[0]
	if quiz.Question != "Which city is the capital of France?" {
		t.Fatalf("unexpected question %q", quiz.Question)
	}
	if quiz.QuizBundleID != "b1" {
		t.Fatalf("expected bundle b1, got %q", quiz.QuizBundleID)
	}
	if len(quiz.Answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(quiz.Answers))
	}

	wantContents := []string{"London", "Paris", "Berlin", "Rome"}
	for i, want := range wantContents {
		if quiz.Answers[i].Content != want {
			t.Fatalf("answer %d: expected label-stripped %q, got %q", i, want, quiz.Answers[i].Content)
		}
	}

	if len(quiz.CorrectAnswers) != 1 || quiz.CorrectAnswers[0] != quiz.Answers[1].ID {
		t.Fatalf("expected answer B marked correct, got %v", quiz.CorrectAnswers)
	}
}

func TestParseBlockCountMatchesSegments(t *testing.T) {
	text := "Q1\na. one\nb. two,a;Q2\na. three\nb. four,b;Q3\na. five\nb. six,a;"

	quizzes, skipped := newTestParser().Parse(text, "b1")
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}
	// Trailing ";" must not produce a phantom fourth record.
	if len(quizzes) != 3 {
		t.Fatalf("expected 3 quizzes, got %d", len(quizzes))
	}
}

func TestParseMultiAnswerMarkers(t *testing.T) {
	cases := []struct {
		name   string
		marker string
	}{
		{"space", "A C"},
		{"hyphen", "A-C"},
		{"vietnamese and", "A và C"},
		{"punctuated", "a. c."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := "Pick two\nA. x\nB. y\nC. z," + tc.marker + ";"
			quizzes, skipped := newTestParser().Parse(text, "b1")
			if len(skipped) != 0 {
				t.Fatalf("unexpected skipped blocks: %v", skipped)
			}
			if len(quizzes) != 1 {
				t.Fatalf("expected 1 quiz, got %d", len(quizzes))
			}
			quiz := quizzes[0]
			want := map[string]bool{quiz.Answers[0].ID: true, quiz.Answers[2].ID: true}
			if len(quiz.CorrectAnswers) != 2 {
				t.Fatalf("expected 2 correct answers, got %v", quiz.CorrectAnswers)
			}
			for _, id := range quiz.CorrectAnswers {
				if !want[id] {
					t.Fatalf("unexpected correct answer id %q", id)
				}
			}
		})
	}
}

func TestParseKeepsInternalCommasInLastAnswer(t *testing.T) {
	text := "Q\nA. first\nB. one, two, three,B;"

	quizzes, skipped := newTestParser().Parse(text, "b1")
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}
	got := quizzes[0].Answers[1].Content
	if got != "one, two, three" {
		t.Fatalf("expected internal commas rejoined, got %q", got)
	}
}

func TestParseCorrectAnswersReferenceAnswers(t *testing.T) {
	text := "Q1\n(a) x\n[B] y\nc. z,a-b;"

	quizzes, _ := newTestParser().Parse(text, "b1")
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(quizzes))
	}
	ids := make(map[string]bool)
	for _, a := range quizzes[0].Answers {
		ids[a.ID] = true
	}
	for _, id := range quizzes[0].CorrectAnswers {
		if !ids[id] {
			t.Fatalf("correct answer id %q not present in answers", id)
		}
	}
}

func TestParseDegenerateLabelOnlyAnswer(t *testing.T) {
	// Answers "A" and "B" are nothing but labels: the stored content becomes
	// empty, yet the matching letter still marks the answer correct.
	text := "Q1\nA\nB,A;"

	quizzes, skipped := newTestParser().Parse(text, "b1")
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped blocks: %v", skipped)
	}
	quiz := quizzes[0]
	if quiz.Question != "Q1" {
		t.Fatalf("unexpected question %q", quiz.Question)
	}
	if len(quiz.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(quiz.Answers))
	}
	if quiz.Answers[0].Content != "" || quiz.Answers[1].Content != "" {
		t.Fatalf("expected stripped label-only contents, got %q and %q", quiz.Answers[0].Content, quiz.Answers[1].Content)
	}
	if len(quiz.CorrectAnswers) != 1 || quiz.CorrectAnswers[0] != quiz.Answers[0].ID {
		t.Fatalf("expected first answer marked correct, got %v", quiz.CorrectAnswers)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	text := strings.Join([]string{
		"only a question line;",         // too few lines
		"Q2\nA. x\nB. y no marker;",     // last line has no comma
		"Q3\nA. x\nB. y,a;",             // fine
	}, "")

	quizzes, skipped := newTestParser().Parse(text, "b1")
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 parsed quiz, got %d", len(quizzes))
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped blocks, got %v", skipped)
	}
	if skipped[0].Index != 0 || skipped[1].Index != 1 {
		t.Fatalf("expected blocks 0 and 1 skipped, got %v", skipped)
	}
}

func TestParseZeroedCounters(t *testing.T) {
	quizzes, _ := newTestParser().Parse("Q\nA. x\nB. y,b;", "b1")
	quiz := quizzes[0]
	if quiz.AnsweredCount != 0 || quiz.CorrectAnsweredCount != 0 || quiz.IncorrectAnsweredCount != 0 || quiz.WrathCount != 0 {
		t.Fatalf("expected zeroed counters, got %+v", quiz)
	}
	if quiz.Tags == nil || quiz.Groups == nil {
		t.Fatalf("expected empty non-nil tag/group sets")
	}
}
