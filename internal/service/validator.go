package service

import (
	"strings"
	"unicode"
)

// AnswerValidator compares a spoken (typed) transcript with the expected answer.
// A transcript matches when, after normalization, it contains the answer.
type AnswerValidator struct{}

func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Matches reports whether heard contains answer. An empty answer never matches.
func (v *AnswerValidator) Matches(heard, answer string) bool {
	a := v.normalize(answer)
	if a == "" {
		return false
	}
	return strings.Contains(v.normalize(heard), a)
}

// Similarity returns how close the transcript is to the answer, from 0 to 1.
func (v *AnswerValidator) Similarity(heard, answer string) float64 {
	h, a := []rune(v.normalize(heard)), []rune(v.normalize(answer))
	maxLen := max(len(h), len(a))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(h, a))/float64(maxLen)
}

func (v *AnswerValidator) normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
}

func levenshteinDistance(r1, r2 []rune) int {
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
