package entities

import (
	"strconv"
	"strings"
)

// Direction tells which language is the prompt and which is the answer.
type Direction string

const (
	DirectionEnKo Direction = "EN->KO"
	DirectionKoEn Direction = "KO->EN"
)

// Directions returns both directions in generation order.
func Directions() []Direction {
	return []Direction{DirectionEnKo, DirectionKoEn}
}

// QuestionID derives the question id for a record in this direction.
func (d Direction) QuestionID(recordID int) string {
	return strconv.Itoa(recordID) + "_" + strings.Replace(string(d), ">", "_", 1)
}

// Question is a generated multiple choice question.
type Question struct {
	ID           string     `json:"qid"`
	RecordID     int        `json:"record_id"`
	Level        Level      `json:"level"`
	LevelTag     string     `json:"level_tag"`
	Type         RecordType `json:"type"`
	Direction    Direction  `json:"direction"`
	Prompt       string     `json:"prompt"`
	Choices      []string   `json:"choices"` // up to 4, fewer only for tiny datasets
	CorrectIndex int        `json:"correct_index"`

	TTSLangPrompt string `json:"tts_lang_prompt"`
	TTSTextPrompt string `json:"tts_text_prompt"`
	TTSLangAnswer string `json:"tts_lang_answer"`
	TTSTextAnswer string `json:"tts_text_answer"`
	AudioPrompt   string `json:"audio_prompt,omitempty"`
	AudioAnswer   string `json:"audio_answer,omitempty"`
}

// CorrectAnswer returns the text of the correct choice.
func (q *Question) CorrectAnswer() string {
	return q.Choices[q.CorrectIndex]
}
