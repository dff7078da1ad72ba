package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// SettingsStorage keeps chat settings in memory. It is used when no database is configured.
type SettingsStorage struct {
	mu       sync.RWMutex
	settings map[int64]entities.ChatSettings
}

func NewSettingsStorage() *SettingsStorage {
	return &SettingsStorage{
		settings: make(map[int64]entities.ChatSettings),
	}
}

func (s *SettingsStorage) Create(_ context.Context, settings *entities.ChatSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[settings.ChatID]; ok {
		return nil
	}
	s.settings[settings.ChatID] = *settings
	return nil
}

func (s *SettingsStorage) GetByChatID(_ context.Context, chatID int64) (*entities.ChatSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[chatID]
	if !ok {
		return nil, entities.ErrSettingsNotFound
	}
	return &settings, nil
}

func (s *SettingsStorage) UpdateLevel(_ context.Context, chatID int64, level entities.Level) error {
	return s.update(chatID, func(cs *entities.ChatSettings) { cs.Level = level })
}

func (s *SettingsStorage) UpdateQuizLength(_ context.Context, chatID int64, length int) error {
	return s.update(chatID, func(cs *entities.ChatSettings) { cs.QuizLength = length })
}

func (s *SettingsStorage) update(chatID int64, fn func(*entities.ChatSettings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, ok := s.settings[chatID]
	if !ok {
		return entities.ErrSettingsNotFound
	}
	fn(&settings)
	settings.UpdatedAt = time.Now()
	s.settings[chatID] = settings
	return nil
}
