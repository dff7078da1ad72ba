package service

import (
	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// DefaultDistractors is the number of wrong choices shown next to the answer.
const DefaultDistractors = 3

// DistractorSelector picks plausible wrong answers for a record.
type DistractorSelector struct {
	rng Rand
}

// NewDistractorSelector creates a selector drawing from rng.
func NewDistractorSelector(rng Rand) *DistractorSelector {
	if rng == nil {
		rng = DefaultRand()
	}
	return &DistractorSelector{rng: rng}
}

// Select returns up to k records whose answer-language value can be shown as a wrong
// choice for record in the given direction.
//
// Candidates are drawn in three widening tiers: same level with the same type or a shared
// confusion group, then any record of the same level, then the whole dataset. Each tier
// is shuffled before drawing. The record itself is never returned and no two results share
// an answer value with each other or with the record. Fewer than k records are returned
// when the dataset cannot supply them.
func (s *DistractorSelector) Select(
	dataset []*entities.SourceRecord,
	record *entities.SourceRecord,
	direction entities.Direction,
	k int,
) []*entities.SourceRecord {
	if k <= 0 {
		return nil
	}

	groups := make(map[string]struct{}, len(record.ConfusionGroups))
	for _, g := range record.ConfusionGroups {
		groups[g] = struct{}{}
	}

	sameLevel := make([]*entities.SourceRecord, 0, len(dataset))
	for _, r := range dataset {
		if r.Level == record.Level && r.ID != record.ID {
			sameLevel = append(sameLevel, r)
		}
	}

	similar := make([]*entities.SourceRecord, 0, len(sameLevel))
	for _, r := range sameLevel {
		if r.Type == record.Type || r.SharesConfusionGroup(groups) {
			similar = append(similar, r)
		}
	}

	p := picker{
		direction: direction,
		seen:      map[string]struct{}{record.AnswerText(direction): {}},
		used:      map[int]struct{}{record.ID: {}},
		out:       make([]*entities.SourceRecord, 0, k),
		k:         k,
	}

	p.draw(s.rng, similar)
	if p.full() {
		return p.out
	}

	p.draw(s.rng, sameLevel)
	if p.full() {
		return p.out
	}

	global := make([]*entities.SourceRecord, 0, len(dataset))
	for _, r := range dataset {
		if r.ID != record.ID {
			global = append(global, r)
		}
	}
	p.draw(s.rng, global)

	return p.out
}

// picker accumulates distractors across tiers.
type picker struct {
	direction entities.Direction
	seen      map[string]struct{} // answer values already shown
	used      map[int]struct{}    // record ids already picked
	out       []*entities.SourceRecord
	k         int
}

func (p *picker) full() bool {
	return len(p.out) >= p.k
}

// draw shuffles the tier and takes eligible records until k are picked.
// The tier slice must be owned by the caller.
func (p *picker) draw(rng Rand, tier []*entities.SourceRecord) {
	Shuffle(rng, tier)
	for _, r := range tier {
		if p.full() {
			return
		}
		if _, ok := p.used[r.ID]; ok {
			continue
		}
		val := r.AnswerText(p.direction)
		if _, ok := p.seen[val]; ok {
			continue
		}
		p.seen[val] = struct{}{}
		p.used[r.ID] = struct{}{}
		p.out = append(p.out, r)
	}
}
