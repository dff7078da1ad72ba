package telegram

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// Telegram rejects callback data longer than 64 bytes.
const maxCallbackDataLen = 64

func TestAnswerCallback_RoundTrip(t *testing.T) {
	t.Parallel()

	sessionID := uuid.NewString()
	data := buildAnswerCallback(sessionID, 59, 3)
	assert.LessOrEqual(t, len(data), maxCallbackDataLen)

	cd := decodeCallback(data)
	assert.Equal(t, actionQuiz, cd.Action)

	got, err := parseAnswerCallback(cd)
	require.NoError(t, err)
	assert.Equal(t, answerCallback{SessionID: sessionID, QuestionIndex: 59, Choice: 3}, got)
}

func TestNextCallback_RoundTrip(t *testing.T) {
	t.Parallel()

	sessionID := uuid.NewString()
	data := buildNextCallback(sessionID, 41)
	assert.LessOrEqual(t, len(data), maxCallbackDataLen)

	cd := decodeCallback(data)
	assert.Equal(t, actionNext, cd.Action)

	got, err := parseNextCallback(cd)
	require.NoError(t, err)
	assert.Equal(t, nextCallback{SessionID: sessionID, QuestionIndex: 41}, got)
}

func TestAudioCallback_RoundTrip(t *testing.T) {
	t.Parallel()

	sessionID := uuid.NewString()
	for _, target := range []string{audioPrompt, audioAnswer} {
		data := buildAudioCallback(sessionID, 7, target)
		assert.LessOrEqual(t, len(data), maxCallbackDataLen)

		cd := decodeCallback(data)
		assert.Equal(t, actionAudio, cd.Action)

		got, err := parseAudioCallback(cd)
		require.NoError(t, err)
		assert.Equal(t, audioCallback{SessionID: sessionID, QuestionIndex: 7, Target: target}, got)
	}
}

func TestSimpleCallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		action string
		param  int
	}{
		{name: "level", data: buildLevelCallback(entities.Level3), action: actionLevel, param: 3},
		{name: "all levels", data: buildLevelCallback(0), action: actionLevel, param: 0},
		{name: "length", data: buildLengthCallback(30), action: actionLength, param: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)

			n, err := cd.intParam(0)
			require.NoError(t, err)
			assert.Equal(t, tt.param, n)
		})
	}


	start := decodeCallback(buildStartCallback())
	assert.Equal(t, actionStart, start.Action)
	assert.Empty(t, start.Params)
}

func TestParseCallback_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  string
		parse func(cd callbackData) error
	}{
		{
			name:  "answer missing params",
			data:  "quiz:abc:1",
			parse: func(cd callbackData) error { _, err := parseAnswerCallback(cd); return err },
		},
		{
			name:  "answer non numeric choice",
			data:  "quiz:abc:1:x",
			parse: func(cd callbackData) error { _, err := parseAnswerCallback(cd); return err },
		},
		{
			name:  "answer non numeric question",
			data:  "quiz:abc:q:1",
			parse: func(cd callbackData) error { _, err := parseAnswerCallback(cd); return err },
		},
		{
			name:  "next without question index",
			data:  "next:abc",
			parse: func(cd callbackData) error { _, err := parseNextCallback(cd); return err },
		},
		{
			name:  "next non numeric question",
			data:  "next:abc:x",
			parse: func(cd callbackData) error { _, err := parseNextCallback(cd); return err },
		},
		{
			name:  "audio unknown target",
			data:  "audio:abc:1:z",
			parse: func(cd callbackData) error { _, err := parseAudioCallback(cd); return err },
		},
		{
			name:  "audio missing target",
			data:  "audio:abc:1",
			parse: func(cd callbackData) error { _, err := parseAudioCallback(cd); return err },
		},
		{
			name:  "level without param",
			data:  "level",
			parse: func(cd callbackData) error { _, err := cd.intParam(0); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.parse(decodeCallback(tt.data))
			require.Error(t, err)
		})
	}
}
