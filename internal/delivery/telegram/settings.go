package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
)

func (h *Handler) handleLevelMenu() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, chatID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		msg := newPlainMessage(chatID, msgChooseLevel)
		msg.ReplyMarkup = buildLevelKeyboard(settings.Level)
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleLengthMenu() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.settingsService.GetOrCreate(ctx, chatID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		msg := newPlainMessage(chatID, msgChooseLength)
		msg.ReplyMarkup = buildLengthKeyboard(settings.QuizLength)
		h.send(msg)
		return nil
	}
}

// handleLevelSelect stores the level filter and rebuilds the quiz right away.
func (h *Handler) handleLevelSelect(cd callbackData, messageID int, callbackID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := cd.intParam(0)
		if err != nil {
			h.answerCallback(callbackID, msgInvalidLevel)
			return nil
		}
		level := entities.Level(n)

		if err := h.settingsService.UpdateLevel(ctx, chatID, level); err != nil {
			if errors.Is(err, service.ErrInvalidLevel) {
				h.answerCallback(callbackID, msgInvalidLevel)
				return nil
			}
			h.answerCallback(callbackID, "")
			return fmt.Errorf("update level: %w", err)
		}

		settings, err := h.settingsService.GetOrCreate(ctx, chatID)
		if err != nil {
			h.answerCallback(callbackID, "")
			return fmt.Errorf("get settings: %w", err)
		}
		h.answerCallback(callbackID, "Level: "+settings.LevelLabel())

		edit := newEdit(chatID, messageID, md("Level set to ")+bold(settings.LevelLabel()))
		h.send(edit)

		h.logger.Info("level changed",
			zap.Int64("chat_id", chatID),
			zap.Int("level", n),
		)

		return h.handleQuiz()(ctx, chatID)
	}
}

// handleLengthSelect stores the quiz length. It applies to the next quiz.
func (h *Handler) handleLengthSelect(cd callbackData, messageID int, callbackID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := cd.intParam(0)
		if err != nil {
			h.answerCallback(callbackID, msgInvalidLength)
			return nil
		}

		if err := h.settingsService.UpdateQuizLength(ctx, chatID, n); err != nil {
			if errors.Is(err, service.ErrInvalidQuizLength) {
				h.answerCallback(callbackID, msgInvalidLength)
				return nil
			}
			h.answerCallback(callbackID, "")
			return fmt.Errorf("update quiz length: %w", err)
		}
		h.answerCallback(callbackID, "")

		text := md(fmt.Sprintf("Quiz length set to %d records. It applies from the next /quiz.", n))
		h.send(newEdit(chatID, messageID, text))
		return nil
	}
}

func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		counts, err := h.quizService.CountByLevel(ctx)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}

		settings, err := h.settingsService.GetOrCreate(ctx, chatID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		session, err := h.quizService.GetActive(ctx, chatID)
		if err != nil && !errors.Is(err, entities.ErrSessionNotFound) {
			return fmt.Errorf("get active quiz: %w", err)
		}

		h.send(newMessage(chatID, formatStats(counts, settings, session)))
		return nil
	}
}
