package allocator

import (
	"math"
	"slices"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// RankCandidates returns the candidates sorted by descending desirability.
// The input slice is not modified.
//
// Order:
//  1. final score, descending (differences within epsilon tie)
//  2. birth date, ascending (older ranks higher)
//  3. Portuguese average, descending (differences within epsilon tie)
//  4. Mathematics average, descending (compared exactly)
//
// Remaining ties keep input order, so the same input always yields the same ranking.
func RankCandidates(candidates []*model.Candidate, epsilon float64) []*model.Candidate {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b *model.Candidate) int {
		return CompareCandidates(a, b, epsilon)
	})
	return ranked
}

// CompareCandidates returns a negative number when a ranks ahead of b,
// a positive number when b ranks ahead of a, and 0 when they tie.
func CompareCandidates(a, b *model.Candidate, epsilon float64) int {
	if c := compareDescending(a.Scores.Final, b.Scores.Final, epsilon); c != 0 {
		return c
	}

	if !a.BirthDate.Equal(b.BirthDate) {
		if a.BirthDate.Before(b.BirthDate) {
			return -1
		}
		return 1
	}

	if c := compareDescending(a.Scores.Portuguese, b.Scores.Portuguese, epsilon); c != 0 {
		return c
	}

	return compareDescending(a.Scores.Mathematics, b.Scores.Mathematics, 0)
}

func compareDescending(a, b, epsilon float64) int {
	if math.Abs(a-b) <= epsilon {
		return 0
	}
	if a > b {
		return -1
	}
	return 1
}
