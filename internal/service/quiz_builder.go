package service

import (
	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// QuizBuilder generates question sets from a dataset snapshot.
// It keeps no state between calls besides its random source.
type QuizBuilder struct {
	rng         Rand
	distractors *DistractorSelector
}

// NewQuizBuilder creates a builder. A nil rng falls back to DefaultRand.
func NewQuizBuilder(rng Rand) *QuizBuilder {
	if rng == nil {
		rng = DefaultRand()
	}
	return &QuizBuilder{
		rng:         rng,
		distractors: NewDistractorSelector(rng),
	}
}

// Build samples up to count records (of the given level, or of any level when level is 0)
// and returns two questions per sampled record, EN->KO first, then KO->EN.
//
// The result is empty, never nil, when the dataset or the level pool is empty or count
// is not positive. The caller's dataset is never reordered.
func (b *QuizBuilder) Build(dataset []*entities.SourceRecord, count int, level entities.Level) []entities.Question {
	pool := make([]*entities.SourceRecord, 0, len(dataset))
	for _, r := range dataset {
		if level == 0 || r.Level == level {
			pool = append(pool, r)
		}
	}
	if count <= 0 || len(pool) == 0 {
		return []entities.Question{}
	}

	Shuffle(b.rng, pool)
	sample := pool[:min(count, len(pool))]

	questions := make([]entities.Question, 0, 2*len(sample))
	for _, record := range sample {
		for _, direction := range entities.Directions() {
			questions = append(questions, b.buildQuestion(dataset, record, direction))
		}
	}

	return questions
}

func (b *QuizBuilder) buildQuestion(
	dataset []*entities.SourceRecord,
	record *entities.SourceRecord,
	direction entities.Direction,
) entities.Question {
	answer := record.AnswerText(direction)
	neighbors := b.distractors.Select(dataset, record, direction, DefaultDistractors)

	distractors := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		distractors = append(distractors, n.AnswerText(direction))
	}

	choices, correctIndex := b.buildChoices(answer, distractors)

	q := entities.Question{
		ID:           direction.QuestionID(record.ID),
		RecordID:     record.ID,
		Level:        record.Level,
		LevelTag:     record.LevelTag,
		Type:         record.Type,
		Direction:    direction,
		Prompt:       record.PromptText(direction),
		Choices:      choices,
		CorrectIndex: correctIndex,
	}

	if direction == entities.DirectionEnKo {
		q.TTSLangPrompt, q.TTSTextPrompt = record.TTSEnLang, record.TTSEnText
		q.TTSLangAnswer, q.TTSTextAnswer = record.TTSKoLang, record.TTSKoText
		q.AudioPrompt, q.AudioAnswer = record.AudioEnPrompt, record.AudioKoAnswer
	} else {
		q.TTSLangPrompt, q.TTSTextPrompt = record.TTSKoLang, record.TTSKoText
		q.TTSLangAnswer, q.TTSTextAnswer = record.TTSEnLang, record.TTSEnText
		q.AudioPrompt, q.AudioAnswer = record.AudioKoPrompt, record.AudioEnAnswer
	}

	return q
}

// buildChoices puts the correct answer among the distractors in random order.
// Returns: choices slice and the index of the correct answer.
func (b *QuizBuilder) buildChoices(correct string, distractors []string) ([]string, int) {
	choices := make([]string, 0, 1+len(distractors))
	choices = append(choices, correct)
	choices = append(choices, distractors...)

	// order[pos] is the source index placed at pos.
	order := make([]int, len(choices))
	for i := range order {
		order[i] = i
	}
	Shuffle(b.rng, order)

	shuffled := make([]string, len(choices))
	correctIndex := 0
	for pos, src := range order {
		shuffled[pos] = choices[src]
		if src == 0 {
			correctIndex = pos
		}
	}

	return shuffled, correctIndex
}
