package service

import (
	"math/rand/v2"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func rec(id int, level entities.Level, typ entities.RecordType, en, ko string, groups ...string) *entities.SourceRecord {
	if groups == nil {
		groups = []string{}
	}
	return &entities.SourceRecord{
		ID:              id,
		Level:           level,
		LevelTag:        level.Tag(),
		Type:            typ,
		En:              en,
		Ko:              ko,
		ConfusionGroups: groups,
		TTSEnText:       en,
		TTSKoText:       ko,
		TTSEnLang:       "en-US",
		TTSKoLang:       "ko-KR",
	}
}

// demoDataset has seven records at levels 1,1,1,3,3,3,3.
func demoDataset() []*entities.SourceRecord {
	return []*entities.SourceRecord{
		rec(1, 1, entities.TypeLetter, "b", "ㅂ", "bp"),
		rec(2, 1, entities.TypeLetter, "p", "ㅍ", "bp"),
		rec(3, 1, entities.TypeLetter, "m", "ㅁ", "mn"),
		rec(4, 3, entities.TypeCVC, "sip", "십", "s_sh"),
		rec(5, 3, entities.TypeDigraphWord, "ship", "쉽", "s_sh"),
		rec(6, 3, entities.TypeDigraphWord, "think", "씽크", "th_s"),
		rec(7, 3, entities.TypeWord, "sink", "싱크", "th_s"),
	}
}

func ids(records []*entities.SourceRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
