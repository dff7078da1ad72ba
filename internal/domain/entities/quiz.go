package entities

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrQuizCompleted    = errors.New("quiz already completed")
)

// QuizSession is the selection state of one chat's quiz run.
// It is rebuilt from scratch for every new quiz and never kept as history.
type QuizSession struct {
	ID          string     `json:"id"`           // session uuid
	ChatID      int64      `json:"chat_id"`      // chat the quiz is running in
	Level       Level      `json:"level"`        // level filter, 0 means all levels
	Questions   []Question `json:"questions"`    // generated question set
	Current     int        `json:"current"`      // index of the question on screen
	Correct     int        `json:"correct"`      // number of correct answers so far
	Selected    *int       `json:"selected"`     // choice picked for the current question
	Heard       string     `json:"heard"`        // last transcript typed for the current question
	StartedAt   time.Time  `json:"started_at"`   // when the quiz was built
	CompletedAt *time.Time `json:"completed_at"` // nil while the quiz is running
}

// NewQuizSession creates a session over freshly built questions.
func NewQuizSession(id string, chatID int64, level Level, questions []Question) *QuizSession {
	return &QuizSession{
		ID:        id,
		ChatID:    chatID,
		Level:     level,
		Questions: questions,
		StartedAt: time.Now(),
	}
}

// Total returns the number of questions in the session.
func (s *QuizSession) Total() int {
	return len(s.Questions)
}

// CurrentQuestion returns the question on screen, or nil once the quiz is over.
func (s *QuizSession) CurrentQuestion() *Question {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Current]
}

// Answer records the selected choice for the current question and reports correctness.
func (s *QuizSession) Answer(choice int) (bool, error) {
	if s.IsCompleted() {
		return false, ErrQuizCompleted
	}
	q := s.CurrentQuestion()
	if q == nil {
		return false, ErrQuizCompleted
	}
	if s.Selected != nil {
		return false, ErrAlreadyAnswered
	}
	if choice < 0 || choice >= len(q.Choices) {
		return false, ErrAnswerOutOfRange
	}

	s.Selected = &choice
	isCorrect := choice == q.CorrectIndex
	if isCorrect {
		s.Correct++
	}
	return isCorrect, nil
}

// Next moves to the following question. It returns false and completes
// the session when there are no questions left.
func (s *QuizSession) Next() bool {
	s.Selected = nil
	s.Heard = ""
	s.Current++
	if s.Current >= len(s.Questions) {
		s.Complete()
		return false
	}
	return true
}

// Complete marks the session as completed.
func (s *QuizSession) Complete() {
	if s.CompletedAt != nil {
		return
	}
	now := time.Now()
	s.CompletedAt = &now
}

// IsCompleted reports whether the session is finished.
func (s *QuizSession) IsCompleted() bool {
	return s.CompletedAt != nil
}

// Percentage returns the share of correct answers in percent.
func (s *QuizSession) Percentage() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Correct) / float64(len(s.Questions)) * 100
}
