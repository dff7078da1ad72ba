package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

var (
	ErrInvalidLevel      = errors.New("invalid level")
	ErrInvalidQuizLength = errors.New("invalid quiz length")
)

// SettingsDefaults are applied to chats that have no stored settings yet.
type SettingsDefaults struct {
	Level      entities.Level
	QuizLength int
}

type SettingsService struct {
	repository SettingsRepository
	defaults   SettingsDefaults
}

func NewSettingsService(repository SettingsRepository, defaults SettingsDefaults) *SettingsService {
	if defaults.QuizLength <= 0 {
		defaults.QuizLength = entities.DefaultQuizLength
	}
	return &SettingsService{repository: repository, defaults: defaults}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, chatID int64) (*entities.ChatSettings, error) {
	settings, err := s.repository.GetByChatID(ctx, chatID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, entities.ErrSettingsNotFound) {
		return nil, err
	}

	settings = entities.NewChatSettings(chatID, s.defaults.Level, s.defaults.QuizLength)
	if err := s.repository.Create(ctx, settings); err != nil {
		return nil, fmt.Errorf("create settings: %w", err)
	}

	// Another update may have created the row first.
	return s.repository.GetByChatID(ctx, chatID)
}

// UpdateLevel sets the level filter. Level 0 selects all levels.
func (s *SettingsService) UpdateLevel(ctx context.Context, chatID int64, level entities.Level) error {
	if level != 0 && !level.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	if _, err := s.GetOrCreate(ctx, chatID); err != nil {
		return err
	}
	return s.repository.UpdateLevel(ctx, chatID, level)
}

func (s *SettingsService) UpdateQuizLength(ctx context.Context, chatID int64, length int) error {
	if length <= 0 || length > entities.MaxQuizLength {
		return fmt.Errorf("%w: %d", ErrInvalidQuizLength, length)
	}
	if _, err := s.GetOrCreate(ctx, chatID); err != nil {
		return err
	}
	return s.repository.UpdateQuizLength(ctx, chatID, length)
}
