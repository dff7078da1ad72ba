package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrQuestionMismatch     = errors.New("question is not the current one")
	ErrNotAnswered          = errors.New("current question is not answered yet")
)

// AnswerResult describes the outcome of a selected choice.
type AnswerResult struct {
	Session   *entities.QuizSession
	Question  entities.Question
	Selected  int
	IsCorrect bool
}

// TranscriptResult describes how a typed transcript compares to the expected answer.
type TranscriptResult struct {
	Session    *entities.QuizSession
	Question   entities.Question
	Heard      string
	Match      bool
	Similarity float64
}

type QuizService struct {
	records   RecordRepository
	settings  SettingsProvider
	storage   QuizStorage
	builder   *QuizBuilder
	validator *AnswerValidator
	logger    *zap.Logger

	// mu serializes read-modify-write cycles on stored sessions.
	mu sync.Mutex
}

func NewQuizService(
	records RecordRepository,
	settings SettingsProvider,
	storage QuizStorage,
	builder *QuizBuilder,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		records:   records,
		settings:  settings,
		storage:   storage,
		builder:   builder,
		validator: NewAnswerValidator(),
		logger:    logger,
	}
}

// StartQuiz builds a new question set with the chat's settings and makes it
// the chat's active session.
func (s *QuizService) StartQuiz(ctx context.Context, chatID int64) (*entities.QuizSession, error) {
	settings, err := s.settings.GetOrCreate(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	questions, err := s.BuildSet(ctx, settings.QuizLength, settings.Level)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := entities.NewQuizSession(uuid.NewString(), chatID, settings.Level, questions)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Store(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("quiz started",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID),
		zap.Int("level", int(settings.Level)),
		zap.Int("questions", session.Total()),
	)

	return session, nil
}

// BuildSet generates questions without creating a session.
func (s *QuizService) BuildSet(ctx context.Context, count int, level entities.Level) ([]entities.Question, error) {
	if level != 0 && !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	dataset, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}

	return s.builder.Build(dataset, count, level), nil
}

func (s *QuizService) GetSession(ctx context.Context, sessionID string) (*entities.QuizSession, error) {
	return s.storage.Get(ctx, sessionID)
}

func (s *QuizService) GetActive(ctx context.Context, chatID int64) (*entities.QuizSession, error) {
	return s.storage.GetActive(ctx, chatID)
}

// Answer records choice for the question at questionIndex. The index must be
// the session's current question, which rejects presses on stale keyboards.
func (s *QuizService) Answer(
	ctx context.Context,
	sessionID string,
	questionIndex int,
	choice int,
) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, entities.ErrQuizCompleted
	}
	if questionIndex != session.Current {
		return nil, fmt.Errorf("%w: got %d, current %d", ErrQuestionMismatch, questionIndex, session.Current)
	}

	isCorrect, err := session.Answer(choice)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Store(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &AnswerResult{
		Session:   session,
		Question:  *session.CurrentQuestion(),
		Selected:  choice,
		IsCorrect: isCorrect,
	}, nil
}

// Next advances the session past the answered question at questionIndex.
// It returns false when the quiz is over; a finished session is removed from storage.
func (s *QuizService) Next(ctx context.Context, sessionID string, questionIndex int) (*entities.QuizSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.IsCompleted() {
		return nil, false, entities.ErrQuizCompleted
	}
	if questionIndex != session.Current {
		return nil, false, fmt.Errorf("%w: got %d, current %d", ErrQuestionMismatch, questionIndex, session.Current)
	}
	if session.Selected == nil {
		return nil, false, ErrNotAnswered
	}

	if session.Next() {
		if err := s.storage.Store(ctx, session); err != nil {
			return nil, false, fmt.Errorf("store session: %w", err)
		}
		return session, true, nil
	}

	if err := s.storage.Delete(ctx, session.ID); err != nil {
		return nil, false, fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("quiz completed",
		zap.Int64("chat_id", session.ChatID),
		zap.String("session_id", session.ID),
		zap.Int("correct", session.Correct),
		zap.Int("total", session.Total()),
	)

	return session, false, nil
}

// CheckTranscript compares a typed transcript with the correct answer of the
// chat's current question and remembers it for the answer feedback.
func (s *QuizService) CheckTranscript(ctx context.Context, chatID int64, heard string) (*TranscriptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.GetActive(ctx, chatID)
	if err != nil {
		return nil, err
	}
	q := session.CurrentQuestion()
	if session.IsCompleted() || q == nil {
		return nil, entities.ErrQuizCompleted
	}

	session.Heard = heard
	if err := s.storage.Store(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	answer := q.CorrectAnswer()
	return &TranscriptResult{
		Session:    session,
		Question:   *q,
		Heard:      heard,
		Match:      s.validator.Matches(heard, answer),
		Similarity: s.validator.Similarity(heard, answer),
	}, nil
}

// CountByLevel returns the number of dataset records per level.
func (s *QuizService) CountByLevel(ctx context.Context) (map[entities.Level]int, error) {
	return s.records.CountByLevel(ctx)
}
