package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             *tgbotapi.BotAPI
	logger          *zap.Logger
	quizService     QuizService
	settingsService SettingsService
	messages        MessageStorage
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	settingsService SettingsService,
	messages MessageStorage,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		quizService:     quizService,
		settingsService: settingsService,
		messages:        messages,
	}
}

// Commands lists the commands shown in the Telegram menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a new quiz"},
		{Command: "level", Description: "Choose the level"},
		{Command: "length", Description: "Choose the quiz length"},
		{Command: "stats", Description: "Dataset and current quiz"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		if update.Message.Text == "" {
			return
		}
		_ = h.withErrorHandling(h.handleTranscript(update.Message.Text))(ctx, chatID)
		return
	}

	switch update.Message.Command() {
	case "start":
		h.send(newMessage(chatID, welcomeMessage()))
		_ = h.withErrorHandling(h.handleQuiz())(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, helpMessage()))

	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz())(ctx, chatID)

	case "level":
		_ = h.withErrorHandling(h.handleLevelMenu())(ctx, chatID)

	case "length":
		_ = h.withErrorHandling(h.handleLengthMenu())(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.handleStats())(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// sendMessage sends c and returns the sent message ID.
func (h *Handler) sendMessage(c tgbotapi.Chattable) (int, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// request performs API calls that return no message, like edits of reply markup.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}
