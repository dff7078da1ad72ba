package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/ek-phonics-bot/internal/config"
	httpapi "github.com/aliskhannn/ek-phonics-bot/internal/delivery/http"
	"github.com/aliskhannn/ek-phonics-bot/internal/delivery/telegram"
	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/ek-phonics-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/ek-phonics-bot/internal/logger"
	"github.com/aliskhannn/ek-phonics-bot/internal/repository"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
	"github.com/aliskhannn/ek-phonics-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dataset.
	records, err := repository.NewRecordRepository(ctx, cfg.Dataset.Path)
	if err != nil {
		lg.Fatal("failed to load dataset", zap.String("source", cfg.Dataset.Path), zap.Error(err))
	}
	counts, _ := records.CountByLevel(ctx)
	lg.Info("dataset loaded", zap.String("source", cfg.Dataset.Path), zap.Any("records_per_level", counts))

	checks := make(map[string]httpapi.HealthChecker)

	// Settings persistence.
	var settingsRepo service.SettingsRepository = storage.NewSettingsStorage()
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool, lg); err != nil {
			lg.Fatal("failed to apply migrations", zap.Error(err))
		}

		settingsRepo = pgrepo.NewSettingsRepository(pool)
		checks["postgres"] = postgres.NewHealthChecker(pool)
		lg.Info("using postgres settings storage")
	} else {
		lg.Info("DATABASE_URL is not set, using in-memory settings storage")
	}

	// Quiz sessions.
	var quizStorage service.QuizStorage = storage.NewQuizStorage()
	if cfg.Redis.Enabled() {
		rdb, err := storage.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()

		redisStorage := storage.NewRedisQuizStorage(rdb, cfg.Quiz.SessionTTL)
		quizStorage = redisStorage
		checks["redis"] = redisStorage
		lg.Info("using redis quiz storage", zap.String("addr", cfg.Redis.Addr))
	}

	// Services.
	settingsService := service.NewSettingsService(settingsRepo, service.SettingsDefaults{
		Level:      entities.Level(cfg.Quiz.DefaultLevel),
		QuizLength: cfg.Quiz.DefaultLength,
	})
	quizService := service.NewQuizService(
		records,
		settingsService,
		quizStorage,
		service.NewQuizBuilder(nil),
		lg,
	)

	// Telegram.
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create telegram bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, lg, quizService, settingsService, storage.NewMessageStorage())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if cfg.HTTP.Addr != "" {
		api := httpapi.NewHandler(quizService, records, checks, cfg.Quiz.DefaultLength, lg)
		server := httpapi.NewServer(cfg.HTTP.Addr, api, lg)
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	if cfg.Dataset.RefreshSchedule != "" {
		refresher := service.NewDatasetRefresher(records, cfg.Dataset.RefreshSchedule, lg)
		g.Go(func() error {
			return refresher.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		lg.Error("shutdown with error", zap.Error(err))
		return
	}
	lg.Info("shutdown complete")
}
