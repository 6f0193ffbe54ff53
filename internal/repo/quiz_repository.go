package repo

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"quiz-practice-service/internal/domain"
	"quiz-practice-service/internal/importer"
)

// practicePoolSize is how many quizzes each bias pool contributes to
// practice selection: the top-N angriest and the top-N least practiced.
const practicePoolSize = 5

// ListOptions controls filtering, ordering, and pagination of a bundle's
// quizzes. Zero values mean: first page, default page size, newest first,
// no search filter.
type ListOptions struct {
	Page     int
	PageSize int
	SortBy   string // createdAt, updatedAt, answeredCount, correctAnsweredCount, incorrectAnsweredCount, wrathCount
	Order    string // asc or desc
	Search   string
}

const defaultPageSize = 10

// QuizRepository owns quiz CRUD, bulk import, querying, and practice
// selection, partitioned by bundle. Each call re-reads the bundle's array
// from the store; there is no cache to go stale. The mutex serializes
// read-modify-write sequences within this process; cross-process writers are
// out of scope (single-user storage, last write wins).
type QuizRepository struct {
	store  Store
	parser *importer.Parser
	mu     sync.Mutex
	now    func() time.Time
	newID  func() string
	rnd    *rand.Rand
}

// NewQuizRepository builds a QuizRepository over the given store.
func NewQuizRepository(store Store, opts ...Option) *QuizRepository {
	o := buildOptions(opts)
	return &QuizRepository{
		store:  store,
		parser: importer.New(importer.WithIDGenerator(o.newID)),
		now:    o.now,
		newID:  o.newID,
		rnd:    o.rnd,
	}
}

// Add stamps the quiz, appends it to its bundle's array, and bumps the
// bundle counter. A missing ID is filled in.
func (r *QuizRepository) Add(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(ctx, quiz)
}

func (r *QuizRepository) addLocked(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if quiz.ID == "" {
		quiz.ID = r.newID()
	}
	now := r.now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, quiz.QuizBundleID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("add quiz: %w", err)
	}
	quizzes = append(quizzes, quiz)
	if err := writeJSON(ctx, r.store, quiz.QuizBundleID, quizzes); err != nil {
		return domain.Quiz{}, fmt.Errorf("add quiz: %w", err)
	}

	count, err := readCount(ctx, r.store, countKey(quiz.QuizBundleID))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("add quiz: %w", err)
	}
	if err := writeCount(ctx, r.store, countKey(quiz.QuizBundleID), count+1); err != nil {
		return domain.Quiz{}, fmt.Errorf("add quiz: %w", err)
	}
	return quiz, nil
}

// GetByID scans the bundle's array for the quiz.
func (r *QuizRepository) GetByID(ctx context.Context, id, bundleID string) (domain.Quiz, error) {
	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, bundleID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("get quiz: %w", err)
	}
	for _, quiz := range quizzes {
		if quiz.ID == id {
			return quiz, nil
		}
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

// GetByBundleID filters, sorts, and pages the bundle's quizzes. The filter
// is case- and accent-insensitive over the question and every answer.
// Sorting and filtering apply to the whole matching set before the page is
// cut, so page N is well-defined relative to the current filter and order.
// The second return value is the total match count across all pages.
func (r *QuizRepository) GetByBundleID(ctx context.Context, bundleID string, opts ListOptions) ([]domain.Quiz, int, error) {
	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, bundleID)
	if err != nil {
		return nil, 0, fmt.Errorf("list quizzes: %w", err)
	}

	folded := foldText(opts.Search)
	matched := make([]domain.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if quizMatches(quiz, folded) {
			matched = append(matched, quiz)
		}
	}

	sortQuizzes(matched, opts.SortBy, opts.Order)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []domain.Quiz{}, len(matched), nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

func sortQuizzes(quizzes []domain.Quiz, sortBy, order string) {
	asc := order == "asc"
	var less func(a, b domain.Quiz) bool
	switch sortBy {
	case "updatedAt":
		less = func(a, b domain.Quiz) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "answeredCount":
		less = func(a, b domain.Quiz) bool { return a.AnsweredCount < b.AnsweredCount }
	case "correctAnsweredCount":
		less = func(a, b domain.Quiz) bool { return a.CorrectAnsweredCount < b.CorrectAnsweredCount }
	case "incorrectAnsweredCount":
		less = func(a, b domain.Quiz) bool { return a.IncorrectAnsweredCount < b.IncorrectAnsweredCount }
	case "wrathCount":
		less = func(a, b domain.Quiz) bool { return a.WrathCount < b.WrathCount }
	default: // createdAt
		less = func(a, b domain.Quiz) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
	sort.SliceStable(quizzes, func(i, j int) bool {
		if asc {
			return less(quizzes[i], quizzes[j])
		}
		return less(quizzes[j], quizzes[i])
	})
}

// Update replaces the quiz within its bundle's array and restamps UpdatedAt.
// An unknown ID is a no-op: callers observe no change.
func (r *QuizRepository) Update(ctx context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, quiz.QuizBundleID)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	for i := range quizzes {
		if quizzes[i].ID == quiz.ID {
			quiz.CreatedAt = quizzes[i].CreatedAt
			quiz.UpdatedAt = r.now()
			quizzes[i] = quiz
			if err := writeJSON(ctx, r.store, quiz.QuizBundleID, quizzes); err != nil {
				return fmt.Errorf("update quiz: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Delete removes the quiz from its bundle's array and decrements the bundle
// counter. Deleting an absent ID is a no-op and leaves the counter alone;
// the counter never drops below zero.
func (r *QuizRepository) Delete(ctx context.Context, id, bundleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, bundleID)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	kept := quizzes[:0]
	for _, quiz := range quizzes {
		if quiz.ID != id {
			kept = append(kept, quiz)
		}
	}
	if len(kept) == len(quizzes) {
		return nil
	}
	if err := writeJSON(ctx, r.store, bundleID, kept); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}

	count, err := readCount(ctx, r.store, countKey(bundleID))
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if count > 0 {
		count--
	}
	if err := writeCount(ctx, r.store, countKey(bundleID), count); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// ImportText parses delimited question text and adds every resulting quiz to
// the bundle, one store write per quiz. It returns how many records were
// imported along with the blocks that could not be parsed.
func (r *QuizRepository) ImportText(ctx context.Context, text, bundleID string) (int, []importer.SkippedBlock, error) {
	quizzes, skipped := r.parser.Parse(text, bundleID)

	r.mu.Lock()
	defer r.mu.Unlock()
	imported := 0
	for _, quiz := range quizzes {
		if _, err := r.addLocked(ctx, quiz); err != nil {
			return imported, skipped, fmt.Errorf("import: %w", err)
		}
		imported++
	}
	return imported, skipped, nil
}

// CountByBundleID returns the bundle's quiz count. The counter key is a
// cached hint; when it disagrees with the actual array length it is
// reconciled in place and the actual length wins.
func (r *QuizRepository) CountByBundleID(ctx context.Context, bundleID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, bundleID)
	if err != nil {
		return 0, fmt.Errorf("count quizzes: %w", err)
	}
	cached, err := readCount(ctx, r.store, countKey(bundleID))
	if err != nil {
		return 0, fmt.Errorf("count quizzes: %w", err)
	}
	if cached != len(quizzes) {
		log.Printf("repo: counter drift for bundle %s (cached %d, actual %d), reconciling", bundleID, cached, len(quizzes))
		if err := writeCount(ctx, r.store, countKey(bundleID), len(quizzes)); err != nil {
			return 0, fmt.Errorf("count quizzes: %w", err)
		}
	}
	return len(quizzes), nil
}

// GetPracticeQuiz picks the next quiz for a practice session. Candidates are
// the bundle's quizzes that carry an answer key and are not in excludedIDs.
// Two bias pools are built from the candidates: the five highest WrathCount
// (frequently wrong or hint-heavy) and the five lowest AnsweredCount (rarely
// seen). The pools are concatenated without deduplication, so a quiz in both
// pools is twice as likely, and one entry is drawn uniformly at random.
// ErrNoCandidates means the session has exhausted the bundle.
func (r *QuizRepository) GetPracticeQuiz(ctx context.Context, excludedIDs []string, bundleID string) (domain.Quiz, error) {
	quizzes, err := readJSON[[]domain.Quiz](ctx, r.store, bundleID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("practice quiz: %w", err)
	}

	excluded := make(map[string]bool, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = true
	}

	candidates := make([]domain.Quiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		if quiz.HasCorrectAnswer() && !excluded[quiz.ID] {
			candidates = append(candidates, quiz)
		}
	}
	if len(candidates) == 0 {
		return domain.Quiz{}, domain.ErrNoCandidates
	}

	byWrath := make([]domain.Quiz, len(candidates))
	copy(byWrath, candidates)
	sort.SliceStable(byWrath, func(i, j int) bool { return byWrath[i].WrathCount > byWrath[j].WrathCount })

	byLeastPracticed := make([]domain.Quiz, len(candidates))
	copy(byLeastPracticed, candidates)
	sort.SliceStable(byLeastPracticed, func(i, j int) bool {
		return byLeastPracticed[i].AnsweredCount < byLeastPracticed[j].AnsweredCount
	})

	pool := append(topN(byWrath, practicePoolSize), topN(byLeastPracticed, practicePoolSize)...)
	return pool[r.rnd.Intn(len(pool))], nil
}

func topN(quizzes []domain.Quiz, n int) []domain.Quiz {
	if len(quizzes) < n {
		n = len(quizzes)
	}
	return quizzes[:n:n]
}
