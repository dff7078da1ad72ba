package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
)

// handleQuiz starts a new quiz for the chat, replacing a running one.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.StartQuiz(ctx, chatID)
		if err != nil {
			if errors.Is(err, service.ErrNoQuestionsAvailable) {
				h.send(newPlainMessage(chatID, msgNoQuestions))
				return nil
			}
			return fmt.Errorf("start quiz: %w", err)
		}

		return h.sendQuestion(chatID, session)
	}
}

// sendQuestion sends the current question of the session as a new message
// and strips the keyboard from the chat's previous question.
func (h *Handler) sendQuestion(chatID int64, session *entities.QuizSession) error {
	q := session.CurrentQuestion()
	if q == nil {
		h.send(newMessage(chatID, formatResult(session)))
		return nil
	}

	msg := newMessage(chatID, formatQuestion(session, q))
	msg.ReplyMarkup = buildQuestionKeyboard(session.ID, session.Current, q)

	msgID, err := h.sendMessage(msg)
	if err != nil {
		return fmt.Errorf("send question: %w", err)
	}

	if prev, ok := h.messages.UpsertAndGetPrev(chatID, msgID); ok && prev.MessageID != msgID {
		h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, prev.MessageID, emptyKeyboard()))
	}

	return nil
}

// handleAnswer records a choice and turns the question message into feedback.
func (h *Handler) handleAnswer(cd callbackData, messageID int, callbackID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ac, err := parseAnswerCallback(cd)
		if err != nil {
			h.answerCallback(callbackID, "")
			return err
		}

		res, err := h.quizService.Answer(ctx, ac.SessionID, ac.QuestionIndex, ac.Choice)
		if err != nil {
			if text, ok := sessionErrorText(err); ok {
				h.answerCallback(callbackID, text)
				return nil
			}
			h.answerCallback(callbackID, "")
			return fmt.Errorf("answer: %w", err)
		}

		toast := "❌"
		if res.IsCorrect {
			toast = "✅"
		}
		h.answerCallback(callbackID, toast)

		isLast := res.Session.Current == res.Session.Total()-1
		edit := newEdit(chatID, messageID, formatFeedback(res))
		kb := buildFeedbackKeyboard(res.Session.ID, res.Session.Current, isLast)
		edit.ReplyMarkup = &kb
		h.send(edit)

		h.logger.Debug("answer recorded",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", res.Session.ID),
			zap.String("question_id", res.Question.ID),
			zap.Bool("correct", res.IsCorrect),
		)

		return nil
	}
}

// handleNext moves to the next question or shows the result screen.
func (h *Handler) handleNext(cd callbackData, messageID int, callbackID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		nc, err := parseNextCallback(cd)
		if err != nil {
			h.answerCallback(callbackID, "")
			return err
		}

		session, hasNext, err := h.quizService.Next(ctx, nc.SessionID, nc.QuestionIndex)
		if err != nil {
			if text, ok := sessionErrorText(err); ok {
				h.answerCallback(callbackID, text)
				return nil
			}
			h.answerCallback(callbackID, "")
			return fmt.Errorf("next question: %w", err)
		}
		h.answerCallback(callbackID, "")

		if !hasNext {
			edit := newEdit(chatID, messageID, formatResult(session))
			kb := buildResultKeyboard()
			edit.ReplyMarkup = &kb
			h.send(edit)
			h.messages.Delete(chatID)
			return nil
		}

		q := session.CurrentQuestion()
		edit := newEdit(chatID, messageID, formatQuestion(session, q))
		kb := buildQuestionKeyboard(session.ID, session.Current, q)
		edit.ReplyMarkup = &kb
		h.send(edit)

		return nil
	}
}

// handleTranscript checks typed speech against the current question.
func (h *Handler) handleTranscript(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		res, err := h.quizService.CheckTranscript(ctx, chatID, text)
		if err != nil {
			if errors.Is(err, entities.ErrSessionNotFound) || errors.Is(err, entities.ErrQuizCompleted) {
				h.send(newPlainMessage(chatID, msgNoActiveQuiz))
				return nil
			}
			return fmt.Errorf("check transcript: %w", err)
		}

		h.send(newMessage(chatID, formatTranscript(res)))
		return nil
	}
}

// sessionErrorText maps expected session errors to a user-facing text.
func sessionErrorText(err error) (string, bool) {
	switch {
	case errors.Is(err, entities.ErrSessionNotFound), errors.Is(err, entities.ErrQuizCompleted):
		return msgQuizExpired, true
	case errors.Is(err, service.ErrQuestionMismatch), errors.Is(err, service.ErrNotAnswered):
		return msgStaleQuestion, true
	case errors.Is(err, entities.ErrAlreadyAnswered):
		return msgAlreadyAnswered, true
	case errors.Is(err, entities.ErrAnswerOutOfRange):
		return msgStaleQuestion, true
	default:
		return "", false
	}
}
