package http

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Router dispatches requests to the handler.
func (h *Handler) Router(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	h.logger.Debug("http request", zap.String("method", method), zap.String("path", path))

	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type")

	if method == fasthttp.MethodOptions {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	case path == "/api/health" && method == fasthttp.MethodGet:
		h.HealthCheck(ctx)
	case path == "/api/levels" && method == fasthttp.MethodGet:
		h.GetLevels(ctx)
	case path == "/api/quiz" && method == fasthttp.MethodGet:
		h.GetQuiz(ctx)
	case path == "/api/dataset/reload" && method == fasthttp.MethodPost:
		h.ReloadDataset(ctx)
	default:
		respondWithError(ctx, fasthttp.StatusNotFound, "route not found")
	}
}

// Server serves the JSON API until its context is done.
type Server struct {
	addr   string
	server *fasthttp.Server
	logger *zap.Logger
}

func NewServer(addr string, h *Handler, logger *zap.Logger) *Server {
	return &Server{
		addr: addr,
		server: &fasthttp.Server{
			Handler:      h.Router,
			Name:         "ek-phonics-bot",
			ReadTimeout:  requestTimeout,
			WriteTimeout: requestTimeout,
		},
		logger: logger,
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", s.addr))
		errCh <- s.server.ListenAndServe(s.addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
