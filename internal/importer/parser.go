// Package importer converts semicolon-delimited plain-text question blocks
// into quiz records for bulk entry.
//
// Each block looks like:
//
//	Which city is the capital of France?
//	A. London
//	B. Paris
//	C. Berlin
//	D. Rome,B;
//
// Line 0 is the question, the following lines are answer options, and the
// last line carries the final option plus a trailing comma-separated
// correct-answer marker ("B", or "A B" / "A-B" / "A và B" for multi-answer).
// Letter labels like "B." are presentation artifacts: they are matched
// against the marker and then stripped from the stored content.
package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"quiz-practice-service/internal/domain"
)

var (
	// Optional bracket, one letter A-D, optional closing bracket, optional
	// dot, trailing whitespace. Mirrors the label shapes seen in exported
	// question banks: "A.", "(b)", "[C]", "d".
	labelPattern = regexp.MustCompile(`^[([]?[a-dA-D][)\]]?\.?\s*`)
	letterOnly   = regexp.MustCompile(`[^a-dA-D]`)
	punctRuns    = regexp.MustCompile(`[.,;]+`)
	// Marker tokens separate on whitespace, newlines, hyphens, and the
	// characters of the Vietnamese connective "và".
	markerSeparators = regexp.MustCompile(`[\s\-và]+`)
	blankLines       = regexp.MustCompile(`\n\n+`)
)

// SkippedBlock reports one import block that could not be parsed. The import
// as a whole carries on past it.
type SkippedBlock struct {
	Index  int
	Reason string
	Text   string
}

func (s SkippedBlock) String() string {
	return fmt.Sprintf("block %d: %s", s.Index, s.Reason)
}

// Parser turns delimited text into quizzes. The ID generator is injectable
// for deterministic tests and defaults to UUIDs.
type Parser struct {
	newID func() string
}

// Option configures a Parser.
type Option func(*Parser)

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(p *Parser) { p.newID = newID }
}

// New builds a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse splits text on ";" and converts each block into a quiz assigned to
// bundleID. The segment after the final ";" is ignored, so a trailing
// delimiter produces no phantom record. Malformed blocks are skipped and
// reported instead of aborting the whole import.
func (p *Parser) Parse(text, bundleID string) ([]domain.Quiz, []SkippedBlock) {
	formatted := strings.TrimSpace(blankLines.ReplaceAllString(strings.TrimSpace(text), "\n"))
	blocks := strings.Split(formatted, ";")

	var quizzes []domain.Quiz
	var skipped []SkippedBlock
	for i := 0; i < len(blocks)-1; i++ {
		block := strings.TrimSpace(blocks[i])
		if block == "" {
			// Artifact of consecutive delimiters, nothing to report.
			continue
		}
		quiz, err := p.parseBlock(block, bundleID)
		if err != nil {
			skipped = append(skipped, SkippedBlock{Index: i, Reason: err.Error(), Text: block})
			continue
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, skipped
}

func (p *Parser) parseBlock(block, bundleID string) (domain.Quiz, error) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return domain.Quiz{}, fmt.Errorf("need a question line and at least one answer line, got %d line(s)", len(lines))
	}

	question := lines[0]
	answers := make([]domain.Answer, 0, len(lines)-1)
	for _, line := range lines[1 : len(lines)-1] {
		answers = append(answers, domain.Answer{ID: p.newID(), Content: line})
	}

	// The last line is "<final option>,<marker>"; the marker is everything
	// after the final comma, and internal commas belong to the option text.
	last := lines[len(lines)-1]
	cut := strings.LastIndex(last, ",")
	if cut < 0 {
		return domain.Quiz{}, fmt.Errorf("last line %q has no correct-answer marker", last)
	}
	marker := last[cut+1:]
	answers = append(answers, domain.Answer{ID: p.newID(), Content: last[:cut]})

	answers, correctIDs := resolveLabels(answers, normalizeMarker(marker))

	return domain.Quiz{
		ID:             p.newID(),
		Question:       question,
		Answers:        answers,
		CorrectAnswers: correctIDs,
		Tags:           []string{},
		Groups:         []string{},
		QuizBundleID:   bundleID,
	}, nil
}

// normalizeMarker turns a raw marker like " b. " or "A - C" or "a và c" into
// an uppercase letter set.
func normalizeMarker(raw string) map[string]bool {
	cleaned := punctRuns.ReplaceAllString(raw, " ")
	set := make(map[string]bool)
	for _, token := range markerSeparators.Split(cleaned, -1) {
		token = strings.ToUpper(strings.TrimSpace(token))
		if token != "" {
			set[token] = true
		}
	}
	return set
}

// resolveLabels detects a leading letter label on each answer, marks the
// answer correct when its letter is in the marker set, and strips the label
// from the stored content. An answer whose entire content is the label (for
// example a bare "A") ends up with empty content but keeps its correctness
// marking; the letter was still the author's key.
func resolveLabels(answers []domain.Answer, marker map[string]bool) ([]domain.Answer, []string) {
	correctIDs := make([]string, 0, len(marker))
	for i, a := range answers {
		label := labelPattern.FindString(a.Content)
		if label == "" {
			continue
		}
		letter := strings.ToUpper(letterOnly.ReplaceAllString(label, ""))
		if marker[letter] {
			correctIDs = append(correctIDs, a.ID)
		}
		answers[i].Content = strings.TrimSpace(strings.TrimPrefix(a.Content, label))
	}
	return answers, correctIDs
}
