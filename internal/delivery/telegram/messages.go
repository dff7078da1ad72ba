// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
)

// Error and status messages.
const (
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgNoQuestions     = "No questions are available for this level yet. Pick another one with /level."
	msgNoActiveQuiz    = "There is no quiz running. Send /quiz to start one."
	msgQuizExpired     = "This quiz has expired. Send /quiz to start a new one."
	msgStaleQuestion   = "This question is already behind you."
	msgAlreadyAnswered = "You have already answered this question."
	msgInvalidLevel    = "Unknown level."
	msgInvalidLength   = "Unsupported quiz length."
	msgChooseLevel     = "Choose the level to practise. The quiz restarts right away."
	msgChooseLength    = "How many records per quiz? Every record gives two questions."
)

var choiceLetters = []string{"A", "B", "C", "D", "E", "F"}

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func choiceLetter(i int) string {
	if i >= 0 && i < len(choiceLetters) {
		return choiceLetters[i]
	}
	return fmt.Sprintf("%d", i+1)
}

// welcomeMessage builds the /start message safely for MarkdownV2.
func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("EN ⇄ KO Phonics Quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Practise how English and Korean sounds map onto each other. "))
	sb.WriteString(md("Every record is asked twice: "))
	sb.WriteString(bold("EN → KO"))
	sb.WriteString(md(" and then "))
	sb.WriteString(bold("KO → EN"))
	sb.WriteString(md("."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Wrong choices come from sounds that are easy to confuse, so listen carefully."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMessage())

	return sb.String()
}

func helpMessage() string {
	var sb strings.Builder

	sb.WriteString(md("/quiz - start a new quiz"))
	sb.WriteString("\n")
	sb.WriteString(md("/level - choose L1 to L4 or all levels"))
	sb.WriteString("\n")
	sb.WriteString(md("/length - choose how many records a quiz samples"))
	sb.WriteString("\n")
	sb.WriteString(md("/stats - dataset and current quiz"))
	sb.WriteString("\n\n")
	sb.WriteString(md("While a question is open you can type what you said out loud. "))
	sb.WriteString(md("I will check it against the correct answer."))

	return sb.String()
}

// formatQuestion renders a question with its lettered choices.
func formatQuestion(session *entities.QuizSession, q *entities.Question) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("%s · %s · Question %d/%d", q.LevelTag, q.Direction, session.Current+1, session.Total())))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Prompt))
	sb.WriteString("\n\n")

	for i, choice := range q.Choices {
		sb.WriteString(md(fmt.Sprintf("%s. %s", choiceLetter(i), choice)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatFeedback renders the question after a choice was made.
func formatFeedback(res *service.AnswerResult) string {
	q := res.Question

	var sb strings.Builder
	sb.WriteString(md(fmt.Sprintf("%s · %s · Question %d/%d", q.LevelTag, q.Direction, res.Session.Current+1, res.Session.Total())))
	sb.WriteString("\n\n")
	sb.WriteString(bold(q.Prompt))
	sb.WriteString("\n\n")

	if res.IsCorrect {
		sb.WriteString(md("✅ Correct!"))
	} else {
		sb.WriteString(md(fmt.Sprintf("❌ You chose %s. %s", choiceLetter(res.Selected), q.Choices[res.Selected])))
	}
	sb.WriteString("\n")
	sb.WriteString(md("Answer: "))
	sb.WriteString(bold(q.CorrectAnswer()))

	if res.Session.Heard != "" {
		sb.WriteString("\n")
		sb.WriteString(md("You said: "))
		sb.WriteString(italic(res.Session.Heard))
	}

	return sb.String()
}

// formatTranscript renders the check of a typed transcript.
func formatTranscript(res *service.TranscriptResult) string {
	var sb strings.Builder

	sb.WriteString(md("🎙 Heard: "))
	sb.WriteString(italic(res.Heard))
	sb.WriteString("\n")

	if res.Match {
		sb.WriteString(md("✅ That matches the answer."))
	} else {
		sb.WriteString(md(fmt.Sprintf("🤔 Not quite (%.0f%% similar). Listen again and pick a choice.", res.Similarity*100)))
	}

	return sb.String()
}

// formatResult renders the final score of a session.
func formatResult(session *entities.QuizSession) string {
	emoji := "💪"
	switch p := session.Percentage(); {
	case p >= 90:
		emoji = "🏆"
	case p >= 70:
		emoji = "🎉"
	case p >= 50:
		emoji = "👍"
	}

	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		bold(emoji+" Quiz complete"),
		md(fmt.Sprintf("Score: %d/%d (%.0f%%)", session.Correct, session.Total(), session.Percentage())),
		md("Start another round with /quiz or switch level with /level."),
	)
}

// formatStats renders dataset counts, the chat's settings and the running quiz.
func formatStats(counts map[entities.Level]int, settings *entities.ChatSettings, session *entities.QuizSession) string {
	var sb strings.Builder

	sb.WriteString(bold("📊 Dataset"))
	sb.WriteString("\n")

	levels := make([]entities.Level, 0, len(counts))
	total := 0
	for level, n := range counts {
		levels = append(levels, level)
		total += n
	}
	slices.Sort(levels)
	for _, level := range levels {
		sb.WriteString(md(fmt.Sprintf("%s: %d records", level.Tag(), counts[level])))
		sb.WriteString("\n")
	}
	sb.WriteString(md(fmt.Sprintf("Total: %d records", total)))
	sb.WriteString("\n\n")

	sb.WriteString(bold("⚙️ Settings"))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Level: %s", settings.LevelLabel())))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Quiz length: %d records", settings.QuizLength)))

	if session != nil {
		sb.WriteString("\n\n")
		sb.WriteString(bold("🎯 Current quiz"))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("Question %d/%d, %d correct so far", session.Current+1, session.Total(), session.Correct)))
	}

	return sb.String()
}

// formatTTS renders the speech hint used when a record has no audio file.
func formatTTS(lang, text string) string {
	if text == "" {
		return md("🔇 No audio for this item.")
	}
	return md(fmt.Sprintf("🔊 [%s] ", lang)) + bold(text)
}
