package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// buildQuestionKeyboard builds a row of lettered choice buttons and a prompt audio button.
func buildQuestionKeyboard(sessionID string, questionIndex int, q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(q.Choices))
	for i := range q.Choices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			choiceLetter(i),
			buildAnswerCallback(sessionID, questionIndex, i),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔊 Listen", buildAudioCallback(sessionID, questionIndex, audioPrompt)),
		),
	)
}

// buildFeedbackKeyboard builds keyboard shown after a choice was made.
func buildFeedbackKeyboard(sessionID string, questionIndex int, isLast bool) tgbotapi.InlineKeyboardMarkup {
	next := "Next ▶️"
	if isLast {
		next = "Finish 🏁"
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔊 Answer", buildAudioCallback(sessionID, questionIndex, audioAnswer)),
			tgbotapi.NewInlineKeyboardButtonData(next, buildNextCallback(sessionID, questionIndex)),
		),
	)
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildStartCallback()),
		),
	)
}

// buildLevelKeyboard builds keyboard for the level filter; the current one is marked.
func buildLevelKeyboard(current entities.Level) tgbotapi.InlineKeyboardMarkup {
	label := func(level entities.Level, text string) string {
		if level == current {
			return "✅ " + text
		}
		return text
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.AllLevels))
	for _, level := range entities.AllLevels {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label(level, level.Tag()), buildLevelCallback(level)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label(0, "All levels"), buildLevelCallback(0)),
		),
	)
}

// buildLengthKeyboard builds keyboard for quiz length setting.
func buildLengthKeyboard(current int) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(entities.QuizLengths))
	for _, n := range entities.QuizLengths {
		text := fmt.Sprintf("%d", n)
		if n == current {
			text = "✅ " + text
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(text, buildLengthCallback(n)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// emptyKeyboard removes an inline keyboard when used in an edit.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
