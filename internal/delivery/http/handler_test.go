package http

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
	"github.com/aliskhannn/ek-phonics-bot/internal/service"
)

type stubQuizService struct {
	counts    map[entities.Level]int
	questions []entities.Question
	err       error

	gotCount int
	gotLevel entities.Level
}

func (s *stubQuizService) BuildSet(_ context.Context, count int, level entities.Level) ([]entities.Question, error) {
	s.gotCount, s.gotLevel = count, level
	if level != 0 && !level.Valid() {
		return nil, service.ErrInvalidLevel
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

func (s *stubQuizService) CountByLevel(context.Context) (map[entities.Level]int, error) {
	return s.counts, s.err
}

type stubReloader struct {
	calls int
	err   error
}

func (r *stubReloader) Reload(context.Context) error {
	r.calls++
	return r.err
}

type stubChecker struct{ err error }

func (c stubChecker) HealthCheck(context.Context) error { return c.err }

func newStubService() *stubQuizService {
	return &stubQuizService{
		counts: map[entities.Level]int{entities.Level1: 3, entities.Level3: 2},
		questions: []entities.Question{
			{ID: "1_EN-_KO", RecordID: 1, Direction: entities.DirectionEnKo, Prompt: "b", Choices: []string{"ㅂ", "ㅍ"}},
			{ID: "1_KO-_EN", RecordID: 1, Direction: entities.DirectionKoEn, Prompt: "ㅂ", Choices: []string{"p", "b"}, CorrectIndex: 1},
		},
	}
}

// serve runs a request through the router and decodes the envelope.
func serve(t *testing.T, h *Handler, method, uri string) (int, APIResponse, []byte) {
	t.Helper()

	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)

	h.Router(&ctx)

	body := ctx.Response.Body()
	var resp APIResponse
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &resp))
	}
	return ctx.Response.StatusCode(), resp, body
}

func TestGetQuiz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		uri        string
		wantStatus int
		wantCount  int
		wantLevel  entities.Level
	}{
		{name: "defaults", uri: "/api/quiz", wantStatus: fasthttp.StatusOK, wantCount: 20},
		{name: "explicit", uri: "/api/quiz?count=5&level=3", wantStatus: fasthttp.StatusOK, wantCount: 5, wantLevel: 3},
		{name: "zero count", uri: "/api/quiz?count=0", wantStatus: fasthttp.StatusOK},
		{name: "negative count", uri: "/api/quiz?count=-1", wantStatus: fasthttp.StatusBadRequest},
		{name: "count above max", uri: "/api/quiz?count=51", wantStatus: fasthttp.StatusBadRequest},
		{name: "non numeric level", uri: "/api/quiz?level=abc", wantStatus: fasthttp.StatusBadRequest},
		{name: "unknown level", uri: "/api/quiz?level=9", wantStatus: fasthttp.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newStubService()
			h := NewHandler(svc, &stubReloader{}, nil, 0, zap.NewNop())

			status, resp, body := serve(t, h, fasthttp.MethodGet, tt.uri)
			require.Equal(t, tt.wantStatus, status, string(body))

			if tt.wantStatus != fasthttp.StatusOK {
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Error)
				return
			}

			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantCount, svc.gotCount)
			assert.Equal(t, tt.wantLevel, svc.gotLevel)

			var payload struct {
				Data QuizResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, 2, payload.Data.Count)
			assert.Equal(t, "1_EN-_KO", payload.Data.Questions[0].ID)
			assert.Equal(t, 1, payload.Data.Questions[1].CorrectIndex)
		})
	}
}

func TestGetQuiz_ServiceError(t *testing.T) {
	t.Parallel()

	svc := newStubService()
	svc.err = errors.New("boom")
	h := NewHandler(svc, &stubReloader{}, nil, 10, zap.NewNop())

	status, resp, _ := serve(t, h, fasthttp.MethodGet, "/api/quiz")
	assert.Equal(t, fasthttp.StatusInternalServerError, status)
	assert.Equal(t, "failed to build quiz", resp.Error)
	assert.Equal(t, 10, svc.gotCount)
}

func TestGetLevels(t *testing.T) {
	t.Parallel()

	h := NewHandler(newStubService(), &stubReloader{}, nil, 0, zap.NewNop())

	status, _, body := serve(t, h, fasthttp.MethodGet, "/api/levels")
	require.Equal(t, fasthttp.StatusOK, status)

	var payload struct {
		Data []LevelCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.Len(t, payload.Data, len(entities.AllLevels))
	assert.Equal(t, LevelCount{Level: entities.Level1, Tag: "L1", Records: 3}, payload.Data[0])
	assert.Equal(t, 0, payload.Data[1].Records)
	assert.Equal(t, 2, payload.Data[2].Records)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		checks := map[string]HealthChecker{"redis": stubChecker{}}
		h := NewHandler(newStubService(), &stubReloader{}, checks, 0, zap.NewNop())

		status, resp, _ := serve(t, h, fasthttp.MethodGet, "/api/health")
		assert.Equal(t, fasthttp.StatusOK, status)
		assert.True(t, resp.Success)
	})

	t.Run("empty dataset", func(t *testing.T) {
		t.Parallel()

		svc := newStubService()
		svc.counts = map[entities.Level]int{}
		h := NewHandler(svc, &stubReloader{}, nil, 0, zap.NewNop())

		status, resp, _ := serve(t, h, fasthttp.MethodGet, "/api/health")
		assert.Equal(t, fasthttp.StatusServiceUnavailable, status)
		assert.False(t, resp.Success)
	})

	t.Run("dependency down", func(t *testing.T) {
		t.Parallel()

		checks := map[string]HealthChecker{"postgres": stubChecker{err: errors.New("refused")}}
		h := NewHandler(newStubService(), &stubReloader{}, checks, 0, zap.NewNop())

		status, resp, _ := serve(t, h, fasthttp.MethodGet, "/api/health")
		assert.Equal(t, fasthttp.StatusServiceUnavailable, status)
		assert.Equal(t, "postgres is unavailable", resp.Error)
	})
}

func TestReloadDataset(t *testing.T) {
	t.Parallel()

	reloader := &stubReloader{}
	h := NewHandler(newStubService(), reloader, nil, 0, zap.NewNop())

	status, resp, _ := serve(t, h, fasthttp.MethodPost, "/api/dataset/reload")
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.Equal(t, "dataset reloaded", resp.Message)
	assert.Equal(t, 1, reloader.calls)

	reloader.err = errors.New("bad line")
	status, resp, _ = serve(t, h, fasthttp.MethodPost, "/api/dataset/reload")
	assert.Equal(t, fasthttp.StatusInternalServerError, status)
	assert.False(t, resp.Success)
	assert.Equal(t, 2, reloader.calls)
}

func TestRouter(t *testing.T) {
	t.Parallel()

	h := NewHandler(newStubService(), &stubReloader{}, nil, 0, zap.NewNop())

	status, resp, _ := serve(t, h, fasthttp.MethodGet, "/api/unknown")
	assert.Equal(t, fasthttp.StatusNotFound, status)
	assert.Equal(t, "route not found", resp.Error)

	status, _, _ = serve(t, h, fasthttp.MethodGet, "/api/dataset/reload")
	assert.Equal(t, fasthttp.StatusNotFound, status)

	status, _, body := serve(t, h, fasthttp.MethodOptions, "/api/quiz")
	assert.Equal(t, fasthttp.StatusOK, status)
	assert.Empty(t, body)
}
