package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	cd := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch cd.Action {
	case actionQuiz:
		fn = h.handleAnswer(cd, messageID, cb.ID)
	case actionNext:
		fn = h.handleNext(cd, messageID, cb.ID)
	case actionAudio:
		fn = h.handleAudio(cd, cb.ID)
	case actionLevel:
		fn = h.handleLevelSelect(cd, messageID, cb.ID)
	case actionLength:
		fn = h.handleLengthSelect(cd, messageID, cb.ID)
	case actionStart:
		h.answerCallback(cb.ID, "")
		fn = h.handleQuiz()
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

// answerCallback removes the user's "clock" and optionally shows a toast.
func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
