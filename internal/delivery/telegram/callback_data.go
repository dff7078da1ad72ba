package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionQuiz   = "quiz"
	actionAudio  = "audio"
	actionLevel  = "level"
	actionLength = "length"
	actionNext   = "next"
	actionStart  = "start"
)

// Audio targets.
const (
	audioPrompt = "p"
	audioAnswer = "a"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, fmt.Errorf("callback %q: missing parameter %d", cd.Raw, i)
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, fmt.Errorf("callback %q: parameter %d: %w", cd.Raw, i, err)
	}
	return n, nil
}

// answerCallback is a parsed quiz answer.
type answerCallback struct {
	SessionID     string
	QuestionIndex int
	Choice        int
}

func parseAnswerCallback(cd callbackData) (answerCallback, error) {
	if len(cd.Params) != 3 {
		return answerCallback{}, fmt.Errorf("invalid answer callback %q", cd.Raw)
	}
	q, err := cd.intParam(1)
	if err != nil {
		return answerCallback{}, err
	}
	c, err := cd.intParam(2)
	if err != nil {
		return answerCallback{}, err
	}
	return answerCallback{SessionID: cd.Params[0], QuestionIndex: q, Choice: c}, nil
}

// nextCallback is a parsed request to move past a question.
type nextCallback struct {
	SessionID     string
	QuestionIndex int
}

func parseNextCallback(cd callbackData) (nextCallback, error) {
	if len(cd.Params) != 2 {
		return nextCallback{}, fmt.Errorf("invalid next callback %q", cd.Raw)
	}
	q, err := cd.intParam(1)
	if err != nil {
		return nextCallback{}, err
	}
	return nextCallback{SessionID: cd.Params[0], QuestionIndex: q}, nil
}

// audioCallback is a parsed audio request.
type audioCallback struct {
	SessionID     string
	QuestionIndex int
	Target        string
}

func parseAudioCallback(cd callbackData) (audioCallback, error) {
	if len(cd.Params) != 3 {
		return audioCallback{}, fmt.Errorf("invalid audio callback %q", cd.Raw)
	}
	q, err := cd.intParam(1)
	if err != nil {
		return audioCallback{}, err
	}
	target := cd.Params[2]
	if target != audioPrompt && target != audioAnswer {
		return audioCallback{}, fmt.Errorf("invalid audio target %q", target)
	}
	return audioCallback{SessionID: cd.Params[0], QuestionIndex: q, Target: target}, nil
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(sessionID string, questionIndex, choice int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sessionID, strconv.Itoa(questionIndex), strconv.Itoa(choice)},
	}.encode()
}

// buildAudioCallback builds callback data for playing prompt or answer audio.
func buildAudioCallback(sessionID string, questionIndex int, target string) string {
	return callbackData{
		Action: actionAudio,
		Params: []string{sessionID, strconv.Itoa(questionIndex), target},
	}.encode()
}

// buildNextCallback builds callback data for leaving the answered question at questionIndex.
func buildNextCallback(sessionID string, questionIndex int) string {
	return callbackData{
		Action: actionNext,
		Params: []string{sessionID, strconv.Itoa(questionIndex)},
	}.encode()
}

func buildLevelCallback(level entities.Level) string {
	return callbackData{Action: actionLevel, Params: []string{strconv.Itoa(int(level))}}.encode()
}

func buildLengthCallback(length int) string {
	return callbackData{Action: actionLength, Params: []string{strconv.Itoa(length)}}.encode()
}

func buildStartCallback() string {
	return actionStart
}
