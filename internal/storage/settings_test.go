package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

func TestSettingsStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewSettingsStorage()

	_, err := s.GetByChatID(ctx, 1)
	require.ErrorIs(t, err, entities.ErrSettingsNotFound)
	require.ErrorIs(t, s.UpdateLevel(ctx, 1, entities.Level2), entities.ErrSettingsNotFound)
	require.ErrorIs(t, s.UpdateQuizLength(ctx, 1, 10), entities.ErrSettingsNotFound)

	require.NoError(t, s.Create(ctx, entities.NewChatSettings(1, entities.Level1, 20)))
	// A second create keeps the existing settings.
	require.NoError(t, s.Create(ctx, entities.NewChatSettings(1, entities.Level4, 5)))

	got, err := s.GetByChatID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.Level1, got.Level)
	assert.Equal(t, 20, got.QuizLength)

	require.NoError(t, s.UpdateLevel(ctx, 1, entities.Level3))
	require.NoError(t, s.UpdateQuizLength(ctx, 1, 30))

	got, err = s.GetByChatID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.Level3, got.Level)
	assert.Equal(t, 30, got.QuizLength)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	// Returned settings are copies.
	got.QuizLength = 1
	again, err := s.GetByChatID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, again.QuizLength)
}
