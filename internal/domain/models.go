package domain

import "time"

// Answer is a single choice belonging to a quiz. Content may carry an HTML
// fragment authored upstream; the data layer treats it as opaque text.
type Answer struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Quiz is a multiple-choice question with per-question practice statistics.
// CorrectAnswers holds answer IDs; more than one entry means a multi-answer
// question that only scores when the selection matches the full set.
type Quiz struct {
	ID                     string    `json:"id"`
	Question               string    `json:"question"`
	Answers                []Answer  `json:"answers"`
	CorrectAnswers         []string  `json:"correctAnswers"`
	AnsweredCount          int       `json:"answeredCount"`
	CorrectAnsweredCount   int       `json:"correctAnsweredCount"`
	IncorrectAnsweredCount int       `json:"incorrectAnsweredCount"`
	WrathCount             int       `json:"wrathCount"`
	Tags                   []string  `json:"tags"`
	Groups                 []string  `json:"groups"`
	QuizBundleID           string    `json:"quizBundleId"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// HasCorrectAnswer reports whether the quiz carries at least one answer key.
// Quizzes without a key are display-only and never selected for practice.
func (q Quiz) HasCorrectAnswer() bool {
	return len(q.CorrectAnswers) > 0
}

// QuizBundle is a named partition of quizzes. The bundle record holds metadata
// only; the quizzes themselves live under a store key named after the bundle ID.
type QuizBundle struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPreset    bool      `json:"isPreset"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuizHistory is one completed practice session. Records are append-only,
// newest first.
type QuizHistory struct {
	ID                     string    `json:"id"`
	AnsweredCount          int       `json:"answeredCount"`
	CorrectAnsweredCount   int       `json:"correctAnsweredCount"`
	IncorrectAnsweredCount int       `json:"incorrectAnsweredCount"`
	CreatedAt              time.Time `json:"createdAt"`
}

// User is the single local profile with lifetime aggregates across all bundles.
type User struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Avatar                   string `json:"avatar,omitempty"`
	Quote                    string `json:"quote,omitempty"`
	Score                    int    `json:"score"`
	UploadedQuizCount        int    `json:"uploadedQuizCount"`
	AnsweredQuizCount        int    `json:"answeredQuizCount"`
	CorrectAnswerCount       int    `json:"correctAnswerCount"`
	IncorrectAnswerCount     int    `json:"incorrectAnswerCount"`
	WrathCount               int    `json:"wrathCount"`
	TopCorrectPerQuizCount   int    `json:"topCorrectPerQuizCount"`
	TopIncorrectPerQuizCount int    `json:"topIncorrectPerQuizCount"`
	TopWrathPerQuizCount     int    `json:"topWrathPerQuizCount"`
}
