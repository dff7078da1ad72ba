package entities

import (
	"errors"
	"time"
)

var ErrSettingsNotFound = errors.New("settings not found")

const (
	DefaultQuizLength = 20
	MaxQuizLength     = 50
)

// QuizLengths are the sample sizes offered in the settings keyboard.
var QuizLengths = []int{5, 10, 20, 30}

// ChatSettings stores per-chat quiz preferences.
type ChatSettings struct {
	ChatID     int64
	Level      Level // level filter, 0 means all levels
	QuizLength int   // number of records to sample, each yields two questions
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewChatSettings creates settings with default values.
func NewChatSettings(chatID int64, level Level, quizLength int) *ChatSettings {
	if quizLength <= 0 {
		quizLength = DefaultQuizLength
	}
	now := time.Now()
	return &ChatSettings{
		ChatID:     chatID,
		Level:      level,
		QuizLength: quizLength,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LevelLabel returns the display label of the level filter.
func (s *ChatSettings) LevelLabel() string {
	if s.Level == 0 {
		return "All"
	}
	return s.Level.Tag()
}
