package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleAudio sends the recorded audio of the prompt or answer. Without a
// recording it replies with the text and language a TTS engine would speak.
func (h *Handler) handleAudio(cd callbackData, callbackID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ac, err := parseAudioCallback(cd)
		if err != nil {
			h.answerCallback(callbackID, "")
			return err
		}

		session, err := h.quizService.GetSession(ctx, ac.SessionID)
		if err != nil {
			if text, ok := sessionErrorText(err); ok {
				h.answerCallback(callbackID, text)
				return nil
			}
			h.answerCallback(callbackID, "")
			return fmt.Errorf("get session: %w", err)
		}
		h.answerCallback(callbackID, "")

		if ac.QuestionIndex < 0 || ac.QuestionIndex >= session.Total() {
			return fmt.Errorf("audio for question %d of %d", ac.QuestionIndex, session.Total())
		}
		q := session.Questions[ac.QuestionIndex]

		ref, lang, text := q.AudioPrompt, q.TTSLangPrompt, q.TTSTextPrompt
		if ac.Target == audioAnswer {
			ref, lang, text = q.AudioAnswer, q.TTSLangAnswer, q.TTSTextAnswer
		}

		if ref == "" {
			h.send(newMessage(chatID, formatTTS(lang, text)))
			return nil
		}

		if _, err := h.bot.Send(buildAudio(chatID, ref, text)); err != nil {
			h.logger.Warn("failed to send audio, falling back to text",
				zap.String("ref", ref),
				zap.Error(err),
			)
			h.send(newMessage(chatID, formatTTS(lang, text)))
		}
		return nil
	}
}

// buildAudio creates an audio message from a file path or an http(s) URL.
func buildAudio(chatID int64, ref, caption string) tgbotapi.AudioConfig {
	var file tgbotapi.RequestFileData = tgbotapi.FilePath(ref)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		file = tgbotapi.FileURL(ref)
	}

	a := tgbotapi.NewAudio(chatID, file)
	a.Caption = caption
	return a
}
