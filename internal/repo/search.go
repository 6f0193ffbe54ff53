package repo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"quiz-practice-service/internal/domain"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldText lowercases and strips combining marks so that accented variants
// compare equal ("Pàrís" folds to "paris"). Vietnamese tone marks are the
// main case; the decompose-and-drop approach covers any Latin diacritic.
func foldText(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// quizMatches reports whether the already-folded search term occurs in the
// question or in any answer content.
func quizMatches(q domain.Quiz, folded string) bool {
	if folded == "" {
		return true
	}
	if strings.Contains(foldText(q.Question), folded) {
		return true
	}
	for _, a := range q.Answers {
		if strings.Contains(foldText(a.Content), folded) {
			return true
		}
	}
	return false
}
