package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
)

const requestTimeout = 10 * time.Second

type QuizService interface {
	BuildSet(ctx context.Context, count int, level entities.Level) ([]entities.Question, error)
	CountByLevel(ctx context.Context) (map[entities.Level]int, error)
}

type DatasetReloader interface {
	Reload(ctx context.Context) error
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// QuizResponse is the payload of GET /api/quiz.
type QuizResponse struct {
	Questions []entities.Question `json:"questions"`
	Count     int                 `json:"count"`
	Level     entities.Level      `json:"level"`
}

// LevelCount is one entry of GET /api/levels.
type LevelCount struct {
	Level   entities.Level `json:"level"`
	Tag     string         `json:"tag"`
	Records int            `json:"records"`
}

type Handler struct {
	quizService  QuizService
	reloader     DatasetReloader
	checks       map[string]HealthChecker
	defaultCount int
	logger       *zap.Logger
}

func NewHandler(
	quizService QuizService,
	reloader DatasetReloader,
	checks map[string]HealthChecker,
	defaultCount int,
	logger *zap.Logger,
) *Handler {
	if defaultCount <= 0 {
		defaultCount = entities.DefaultQuizLength
	}
	return &Handler{
		quizService:  quizService,
		reloader:     reloader,
		checks:       checks,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

// HealthCheck handles GET /api/health.
func (h *Handler) HealthCheck(ctx *fasthttp.RequestCtx) {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	status := map[string]string{"status": "healthy"}

	counts, err := h.quizService.CountByLevel(c)
	if err != nil || total(counts) == 0 {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, "dataset is not loaded")
		return
	}
	status["dataset"] = strconv.Itoa(total(counts)) + " records"

	for name, check := range h.checks {
		if err := check.HealthCheck(c); err != nil {
			h.logger.Warn("health check failed", zap.String("component", name), zap.Error(err))
			respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("%s is unavailable", name))
			return
		}
		status[name] = "connected"
	}

	respondWithSuccess(ctx, status, "service is healthy")
}

// GetLevels handles GET /api/levels.
func (h *Handler) GetLevels(ctx *fasthttp.RequestCtx) {
	counts, err := h.quizService.CountByLevel(ctx)
	if err != nil {
		h.logger.Error("failed to count records", zap.Error(err))
		respondWithError(ctx, fasthttp.StatusInternalServerError, "failed to count records")
		return
	}

	levels := make([]LevelCount, 0, len(entities.AllLevels))
	for _, level := range entities.AllLevels {
		levels = append(levels, LevelCount{
			Level:   level,
			Tag:     level.Tag(),
			Records: counts[level],
		})
	}

	respondWithSuccess(ctx, levels, "")
}

// GetQuiz handles GET /api/quiz?count=N&level=L.
// count defaults to the configured quiz length; level 0 or absent means all levels.
func (h *Handler) GetQuiz(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	count := h.defaultCount
	if args.Has("count") {
		n, err := strconv.Atoi(string(args.Peek("count")))
		if err != nil || n < 0 || n > entities.MaxQuizLength {
			respondWithError(ctx, fasthttp.StatusBadRequest,
				fmt.Sprintf("count must be an integer between 0 and %d", entities.MaxQuizLength))
			return
		}
		count = n
	}

	var level entities.Level
	if args.Has("level") {
		n, err := strconv.Atoi(string(args.Peek("level")))
		if err != nil {
			respondWithError(ctx, fasthttp.StatusBadRequest, "level must be an integer")
			return
		}
		level = entities.Level(n)
	}

	questions, err := h.quizService.BuildSet(ctx, count, level)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLevel) {
			respondWithError(ctx, fasthttp.StatusBadRequest, "level must be 0 (all) or 1..4")
			return
		}
		h.logger.Error("failed to build quiz", zap.Error(err))
		respondWithError(ctx, fasthttp.StatusInternalServerError, "failed to build quiz")
		return
	}

	respondWithSuccess(ctx, QuizResponse{
		Questions: questions,
		Count:     len(questions),
		Level:     level,
	}, "")
}

// ReloadDataset handles POST /api/dataset/reload.
func (h *Handler) ReloadDataset(ctx *fasthttp.RequestCtx) {
	c, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := h.reloader.Reload(c); err != nil {
		h.logger.Error("failed to reload dataset", zap.Error(err))
		respondWithError(ctx, fasthttp.StatusInternalServerError, "failed to reload dataset")
		return
	}

	counts, _ := h.quizService.CountByLevel(c)
	respondWithSuccess(ctx, map[string]int{"records": total(counts)}, "dataset reloaded")
}

func total(counts map[entities.Level]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
