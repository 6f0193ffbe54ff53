// Package app contains the practice use cases on top of the repositories:
// session flow, answer checking, wrath scoring, and profile aggregates.
package app

import (
	"context"
	"fmt"

	"quiz-practice-service/internal/domain"
)

// Wrath scoring: a hint makes the next check count as harder, a correct
// answer cools the quiz down, an incorrect one heats it up. The running
// total is floor-clamped at zero.
const (
	wrathHintPenalty      = 10
	wrathCorrectReward    = -5
	wrathIncorrectPenalty = 20
)

// Points awarded to the profile score per correctly answered quiz.
const correctAnswerScore = 10

// QuizRepository is the slice of the quiz store the practice flow needs.
type QuizRepository interface {
	GetByID(ctx context.Context, id, bundleID string) (domain.Quiz, error)
	Update(ctx context.Context, quiz domain.Quiz) error
	GetPracticeQuiz(ctx context.Context, excludedIDs []string, bundleID string) (domain.Quiz, error)
}

// HistoryRepository records completed sessions.
type HistoryRepository interface {
	Append(ctx context.Context, bundleID string, h domain.QuizHistory) (domain.QuizHistory, error)
}

// UserRepository maintains the profile aggregates.
type UserRepository interface {
	Get(ctx context.Context) (domain.User, error)
	Update(ctx context.Context, user domain.User) error
}

// PracticeService drives a practice session: pick the next quiz, check an
// answer, keep the per-quiz and per-profile statistics current, and record
// the session when it ends.
type PracticeService struct {
	quizzes QuizRepository
	history HistoryRepository
	users   UserRepository
}

// NewPracticeService wires the practice use cases to their repositories.
func NewPracticeService(quizzes QuizRepository, history HistoryRepository, users UserRepository) *PracticeService {
	return &PracticeService{quizzes: quizzes, history: history, users: users}
}

// Session tracks one practice run through a bundle. Answered quizzes go on
// the exclusion list so the selector cannot repeat them within the session.
type Session struct {
	BundleID    string
	Target      int
	Answered    int
	Correct     int
	Incorrect   int
	excludedIDs []string
}

// NewSession starts a session over bundleID aiming for target questions.
func NewSession(bundleID string, target int) *Session {
	return &Session{BundleID: bundleID, Target: target}
}

// Done reports whether the session reached its requested question count.
func (s *Session) Done() bool {
	return s.Answered >= s.Target
}

// Next picks the session's next quiz. domain.ErrNoCandidates means the
// bundle is exhausted for this session.
func (svc *PracticeService) Next(ctx context.Context, s *Session) (domain.Quiz, error) {
	return svc.quizzes.GetPracticeQuiz(ctx, s.excludedIDs, s.BundleID)
}

// CheckResult reports the outcome of one answer check.
type CheckResult struct {
	Correct        bool
	WrathDelta     int
	CorrectAnswers []string
}

// Check scores the selection against the quiz's answer key. The selection is
// correct only when it matches the key exactly in both directions. The quiz
// counters and wrath score are persisted, the profile aggregates updated,
// and the quiz joins the session's exclusion list.
func (svc *PracticeService) Check(ctx context.Context, s *Session, quizID string, selected []string, usedHint bool) (CheckResult, error) {
	quiz, err := svc.quizzes.GetByID(ctx, quizID, s.BundleID)
	if err != nil {
		return CheckResult{}, fmt.Errorf("check answer: %w", err)
	}

	correct := len(selected) > 0 && sameIDSet(selected, quiz.CorrectAnswers)

	delta := 0
	if usedHint {
		delta += wrathHintPenalty
	}
	if correct {
		delta += wrathCorrectReward
	} else {
		delta += wrathIncorrectPenalty
	}

	quiz.WrathCount += delta
	if quiz.WrathCount < 0 {
		quiz.WrathCount = 0
	}
	quiz.AnsweredCount++
	if correct {
		quiz.CorrectAnsweredCount++
	} else {
		quiz.IncorrectAnsweredCount++
	}
	if err := svc.quizzes.Update(ctx, quiz); err != nil {
		return CheckResult{}, fmt.Errorf("check answer: %w", err)
	}

	if err := svc.updateProfile(ctx, quiz, correct, delta); err != nil {
		return CheckResult{}, fmt.Errorf("check answer: %w", err)
	}

	s.Answered++
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
	s.excludedIDs = append(s.excludedIDs, quiz.ID)

	return CheckResult{Correct: correct, WrathDelta: delta, CorrectAnswers: quiz.CorrectAnswers}, nil
}

func (svc *PracticeService) updateProfile(ctx context.Context, quiz domain.Quiz, correct bool, wrathDelta int) error {
	user, err := svc.users.Get(ctx)
	if err != nil {
		return err
	}
	user.AnsweredQuizCount++
	if correct {
		user.CorrectAnswerCount++
		user.Score += correctAnswerScore
	} else {
		user.IncorrectAnswerCount++
	}
	user.WrathCount += wrathDelta
	if user.WrathCount < 0 {
		user.WrathCount = 0
	}
	if quiz.CorrectAnsweredCount > user.TopCorrectPerQuizCount {
		user.TopCorrectPerQuizCount = quiz.CorrectAnsweredCount
	}
	if quiz.IncorrectAnsweredCount > user.TopIncorrectPerQuizCount {
		user.TopIncorrectPerQuizCount = quiz.IncorrectAnsweredCount
	}
	if quiz.WrathCount > user.TopWrathPerQuizCount {
		user.TopWrathPerQuizCount = quiz.WrathCount
	}
	return svc.users.Update(ctx, user)
}

// Finish appends the session to the bundle's history and returns the record.
func (svc *PracticeService) Finish(ctx context.Context, s *Session) (domain.QuizHistory, error) {
	return svc.history.Append(ctx, s.BundleID, domain.QuizHistory{
		AnsweredCount:          s.Answered,
		CorrectAnsweredCount:   s.Correct,
		IncorrectAnsweredCount: s.Incorrect,
	})
}

// sameIDSet compares two ID lists as sets.
func sameIDSet(a, b []string) bool {
	if len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	if len(set) != len(b) {
		return false
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
