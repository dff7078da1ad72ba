package service

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type panicRand struct{}

func (panicRand) IntN(int) int { panic("unexpected draw") }

func TestShuffle_KeepsElements(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		s := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
		Shuffle(newRand(seed), s)

		sorted := slices.Clone(s)
		slices.Sort(sorted)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
	}
}

func TestShuffle_ShortSlicesDoNotDraw(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Shuffle(panicRand{}, []int{})
		Shuffle(panicRand{}, []int{42})
		Shuffle[string](panicRand{}, nil)
	})
}

func TestShuffle_Uniform(t *testing.T) {
	t.Parallel()

	const rounds = 60000
	rng := newRand(7)
	counts := make(map[string]int)

	for range rounds {
		s := []string{"a", "b", "c"}
		Shuffle(rng, s)
		counts[strings.Join(s, "")]++
	}

	assert.Len(t, counts, 6)
	expected := rounds / 6
	for perm, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)/10, "permutation %s", perm)
	}
}

func TestDefaultRand_InRange(t *testing.T) {
	t.Parallel()

	rng := DefaultRand()
	for range 1000 {
		n := rng.IntN(4)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 4)
	}
}
