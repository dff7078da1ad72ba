package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

func TestRedisKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "quiz:session:abc", sessionKey("abc"))
	assert.Equal(t, "quiz:chat:-100123", activeKey(-100123))
}

// newRedisStorage connects to the instance named by TEST_REDIS_ADDR.
func newRedisStorage(t *testing.T) *RedisQuizStorage {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisQuizStorage(client, time.Minute)
}

func TestRedisQuizStorage(t *testing.T) {
	s := newRedisStorage(t)
	ctx := context.Background()
	chatID := time.Now().UnixNano()

	first := newSession(uuid.NewString(), chatID)
	second := newSession(uuid.NewString(), chatID)

	require.NoError(t, s.Store(ctx, first))
	require.NoError(t, s.Store(ctx, second))
	t.Cleanup(func() { _ = s.Delete(ctx, second.ID) })

	_, err := s.Get(ctx, first.ID)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	active, err := s.GetActive(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, second.Questions, active.Questions)

	isCorrect, err := active.Answer(0)
	require.NoError(t, err)
	require.True(t, isCorrect)
	require.NoError(t, s.Store(ctx, active))

	got, err := s.Get(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Selected)
	assert.Equal(t, 0, *got.Selected)
	assert.Equal(t, 1, got.Correct)

	require.NoError(t, s.HealthCheck(ctx))

	require.NoError(t, s.Delete(ctx, second.ID))
	_, err = s.GetActive(ctx, chatID)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)
}
