package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/infra/postgres"
)

// SettingsRepository provides access to chat settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database pool.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create stores settings for a chat unless they already exist.
func (r *SettingsRepository) Create(ctx context.Context, settings *entities.ChatSettings) error {
	query := `
		INSERT INTO chat_settings (chat_id, level, quiz_length, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (chat_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		settings.ChatID,
		int(settings.Level),
		settings.QuizLength,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByChatID retrieves settings for a chat.
func (r *SettingsRepository) GetByChatID(ctx context.Context, chatID int64) (*entities.ChatSettings, error) {
	query := `
		SELECT chat_id, level, quiz_length, created_at, updated_at
		FROM chat_settings
		WHERE chat_id = $1
	`

	var (
		settings entities.ChatSettings
		level    int
	)
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&settings.ChatID,
		&level,
		&settings.QuizLength,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	settings.Level = entities.Level(level)

	return &settings, nil
}

// UpdateLevel updates the level filter of a chat.
func (r *SettingsRepository) UpdateLevel(ctx context.Context, chatID int64, level entities.Level) error {
	query := `
		UPDATE chat_settings
		SET level = $1, updated_at = $2
		WHERE chat_id = $3
	`

	result, err := r.db.Exec(ctx, query, int(level), time.Now(), chatID)
	if err != nil {
		return fmt.Errorf("update level: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrSettingsNotFound
	}

	return nil
}

// UpdateQuizLength updates the number of records sampled per quiz.
func (r *SettingsRepository) UpdateQuizLength(ctx context.Context, chatID int64, length int) error {
	query := `
		UPDATE chat_settings
		SET quiz_length = $1, updated_at = $2
		WHERE chat_id = $3
	`

	result, err := r.db.Exec(ctx, query, length, time.Now(), chatID)
	if err != nil {
		return fmt.Errorf("update quiz length: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entities.ErrSettingsNotFound
	}

	return nil
}
