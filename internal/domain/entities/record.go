// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidRecord = errors.New("invalid source record")

// Level is a difficulty tier of a record.
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
	Level4
)

// AllLevels lists the recognized difficulty tiers in ascending order.
var AllLevels = []Level{Level1, Level2, Level3, Level4}

// Valid reports whether the level is a recognized tier.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level4
}

// Tag returns the display label of the level ("L1".."L4").
func (l Level) Tag() string {
	return fmt.Sprintf("L%d", int(l))
}

// RecordType is the construct category of a record, used for similarity matching.
type RecordType string

const (
	TypeLetter      RecordType = "letter"
	TypeCV          RecordType = "cv"
	TypeWord        RecordType = "word"
	TypeCVC         RecordType = "cvc"
	TypeDigraphWord RecordType = "digraph_word"
	TypeMixed       RecordType = "mixed"
)

var recordTypes = []RecordType{TypeLetter, TypeCV, TypeWord, TypeCVC, TypeDigraphWord, TypeMixed}

// Valid reports whether the type is part of the known enumeration.
func (t RecordType) Valid() bool {
	return slices.Contains(recordTypes, t)
}

// SourceRecord is one dataset entry pairing an English form with its Korean rendering.
type SourceRecord struct {
	ID              int        `json:"id"`              // unique record id
	Level           Level      `json:"level"`           // difficulty tier (1-4)
	LevelTag        string     `json:"level_tag"`       // display label matching Level
	Type            RecordType `json:"type"`            // construct category
	En              string     `json:"en"`              // English form
	Ko              string     `json:"ko"`              // Korean form
	Primary         string     `json:"primary"`         // main grapheme or rule key, e.g. "sh", "silent_e"
	ConfusionGroups []string   `json:"conf_groups"`     // confusion clusters the record belongs to
	TTSEnText       string     `json:"tts_en_text"`     // English speech text
	TTSKoText       string     `json:"tts_ko_text"`     // Korean speech text
	TTSEnLang       string     `json:"tts_en_lang"`     // English speech language, e.g. "en-US"
	TTSKoLang       string     `json:"tts_ko_lang"`     // Korean speech language, e.g. "ko-KR"
	AudioEnPrompt   string     `json:"audio_en_prompt"` // optional pre-rendered audio
	AudioKoPrompt   string     `json:"audio_ko_prompt"`
	AudioEnAnswer   string     `json:"audio_en_answer"`
	AudioKoAnswer   string     `json:"audio_ko_answer"`
	Notes           string     `json:"notes,omitempty"`
}

// Validate checks that the record is well-formed.
func (r *SourceRecord) Validate() error {
	switch {
	case !r.Level.Valid():
		return fmt.Errorf("%w: id %d: unknown level %d", ErrInvalidRecord, r.ID, r.Level)
	case r.LevelTag != r.Level.Tag():
		return fmt.Errorf("%w: id %d: level tag %q does not match level %d", ErrInvalidRecord, r.ID, r.LevelTag, r.Level)
	case !r.Type.Valid():
		return fmt.Errorf("%w: id %d: unknown type %q", ErrInvalidRecord, r.ID, r.Type)
	case r.En == "":
		return fmt.Errorf("%w: id %d: missing en", ErrInvalidRecord, r.ID)
	case r.Ko == "":
		return fmt.Errorf("%w: id %d: missing ko", ErrInvalidRecord, r.ID)
	}
	return nil
}

// PromptText returns the form shown to the learner for the direction.
func (r *SourceRecord) PromptText(d Direction) string {
	if d == DirectionEnKo {
		return r.En
	}
	return r.Ko
}

// AnswerText returns the answer-language form for the direction.
func (r *SourceRecord) AnswerText(d Direction) string {
	if d == DirectionEnKo {
		return r.Ko
	}
	return r.En
}

// SharesConfusionGroup reports whether the record belongs to any of the given groups.
func (r *SourceRecord) SharesConfusionGroup(groups map[string]struct{}) bool {
	for _, g := range r.ConfusionGroups {
		if _, ok := groups[g]; ok {
			return true
		}
	}
	return false
}
