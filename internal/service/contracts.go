package service

import (
	"context"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// RecordRepository exposes the current dataset snapshot.
type RecordRepository interface {
	GetAll(ctx context.Context) ([]*entities.SourceRecord, error)
	CountByLevel(ctx context.Context) (map[entities.Level]int, error)
}

// DatasetReloader reloads the dataset from its source.
type DatasetReloader interface {
	Reload(ctx context.Context) error
}

type SettingsRepository interface {
	Create(ctx context.Context, settings *entities.ChatSettings) error
	GetByChatID(ctx context.Context, chatID int64) (*entities.ChatSettings, error)
	UpdateLevel(ctx context.Context, chatID int64, level entities.Level) error
	UpdateQuizLength(ctx context.Context, chatID int64, length int) error
}

// QuizStorage keeps running quiz sessions. Store replaces the active session of the chat.
type QuizStorage interface {
	Store(ctx context.Context, session *entities.QuizSession) error
	Get(ctx context.Context, sessionID string) (*entities.QuizSession, error)
	GetActive(ctx context.Context, chatID int64) (*entities.QuizSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// SettingsProvider resolves the settings of a chat, creating defaults on first use.
type SettingsProvider interface {
	GetOrCreate(ctx context.Context, chatID int64) (*entities.ChatSettings, error)
}
