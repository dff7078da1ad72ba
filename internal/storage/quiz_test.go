package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

func newSession(id string, chatID int64) *entities.QuizSession {
	return entities.NewQuizSession(id, chatID, entities.Level1, []entities.Question{
		{ID: "1_EN-_KO", RecordID: 1, Choices: []string{"ㅂ", "ㅍ"}, CorrectIndex: 0},
		{ID: "1_KO-_EN", RecordID: 1, Choices: []string{"b", "p"}, CorrectIndex: 1},
	})
}

func TestQuizStorage_StoreAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage()

	require.NoError(t, s.Store(ctx, newSession("a", 1)))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ChatID)
	assert.Len(t, got.Questions, 2)

	active, err := s.GetActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", active.ID)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	_, err = s.GetActive(ctx, 2)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestQuizStorage_StoreReplacesActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage()

	require.NoError(t, s.Store(ctx, newSession("a", 1)))
	require.NoError(t, s.Store(ctx, newSession("b", 1)))
	require.NoError(t, s.Store(ctx, newSession("c", 2)))

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	active, err := s.GetActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", active.ID)

	other, err := s.GetActive(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", other.ID)
}

func TestQuizStorage_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage()

	session := newSession("a", 1)
	require.NoError(t, s.Store(ctx, session))

	// Mutating the stored original must not leak into storage.
	_, err := session.Answer(0)
	require.NoError(t, err)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got.Selected)
	assert.Zero(t, got.Correct)

	_, err = got.Answer(1)
	require.NoError(t, err)
	got.Complete()

	again, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, again.Selected)
	assert.False(t, again.IsCompleted())

	require.NoError(t, s.Store(ctx, got))
	again, err = s.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, again.Selected)
	assert.Equal(t, 1, *again.Selected)

	*got.Selected = 0
	again, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, *again.Selected)
}

func TestQuizStorage_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage()

	require.NoError(t, s.Store(ctx, newSession("a", 1)))
	require.NoError(t, s.Delete(ctx, "a"))

	_, err := s.Get(ctx, "a")
	require.ErrorIs(t, err, entities.ErrSessionNotFound)
	_, err = s.GetActive(ctx, 1)
	require.ErrorIs(t, err, entities.ErrSessionNotFound)

	require.NoError(t, s.Delete(ctx, "a"))
}
