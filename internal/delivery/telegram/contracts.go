package telegram

import (
	"context"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
	"github.com/aliskhannn/ek-phonics-bot/internal/storage"
)

type QuizService interface {
	StartQuiz(ctx context.Context, chatID int64) (*entities.QuizSession, error)
	GetSession(ctx context.Context, sessionID string) (*entities.QuizSession, error)
	GetActive(ctx context.Context, chatID int64) (*entities.QuizSession, error)
	Answer(ctx context.Context, sessionID string, questionIndex, choice int) (*service.AnswerResult, error)
	Next(ctx context.Context, sessionID string, questionIndex int) (*entities.QuizSession, bool, error)
	CheckTranscript(ctx context.Context, chatID int64, heard string) (*service.TranscriptResult, error)
	CountByLevel(ctx context.Context) (map[entities.Level]int, error)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, chatID int64) (*entities.ChatSettings, error)
	UpdateLevel(ctx context.Context, chatID int64, level entities.Level) error
	UpdateQuizLength(ctx context.Context, chatID int64, length int) error
}

// MessageStorage remembers the last question message of every chat.
type MessageStorage interface {
	UpsertAndGetPrev(chatID int64, messageID int) (storage.QuestionMessage, bool)
	Delete(chatID int64)
}
