package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

func TestRankCandidates_ByFinalScore(t *testing.T) {
	low := newCandidate(candidateOpts{id: "low", score: 6})
	high := newCandidate(candidateOpts{id: "high", score: 9})
	mid := newCandidate(candidateOpts{id: "mid", score: 7.5})

	ranked := RankCandidates([]*model.Candidate{low, high, mid}, DefaultScoreEpsilon)

	assert.Equal(t, []*model.Candidate{high, mid, low}, ranked)
}

func TestRankCandidates_OlderWinsTie(t *testing.T) {
	// Same 7.50 score: the earlier birth date ranks higher regardless of subject tie-breaks
	younger := newCandidate(candidateOpts{id: "younger", score: 7.5, birth: "2010-06-01", port: 10, mat: 10})
	older := newCandidate(candidateOpts{id: "older", score: 7.5, birth: "2010-01-01", port: 1, mat: 1})

	ranked := RankCandidates([]*model.Candidate{younger, older}, DefaultScoreEpsilon)

	assert.Equal(t, []*model.Candidate{older, younger}, ranked)
}

func TestRankCandidates_ScoresWithinEpsilonTie(t *testing.T) {
	a := newCandidate(candidateOpts{id: "a", score: 7.50004, birth: "2010-06-01"})
	b := newCandidate(candidateOpts{id: "b", score: 7.5, birth: "2010-01-01"})

	ranked := RankCandidates([]*model.Candidate{a, b}, DefaultScoreEpsilon)

	assert.Equal(t, "b", ranked[0].ID, "difference below epsilon falls through to birth date")
}

func TestRankCandidates_SubjectTieBreaks(t *testing.T) {
	portuguese := newCandidate(candidateOpts{id: "port", score: 8, port: 9, mat: 1})
	mathematics := newCandidate(candidateOpts{id: "mat", score: 8, port: 8, mat: 10})
	mathOnly := newCandidate(candidateOpts{id: "mat-only", score: 8, port: 8, mat: 9})

	ranked := RankCandidates([]*model.Candidate{mathOnly, mathematics, portuguese}, DefaultScoreEpsilon)

	assert.Equal(t, []string{"port", "mat", "mat-only"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestRankCandidates_MathematicsComparedExactly(t *testing.T) {
	lower := newCandidate(candidateOpts{id: "lower", score: 8, port: 8, mat: 7.5})
	higher := newCandidate(candidateOpts{id: "higher", score: 8, port: 8, mat: 7.50004})

	ranked := RankCandidates([]*model.Candidate{lower, higher}, DefaultScoreEpsilon)

	assert.Equal(t, "higher", ranked[0].ID, "a sub-epsilon mathematics difference still decides")
}

func TestRankCandidates_FullTieKeepsInputOrder(t *testing.T) {
	a := newCandidate(candidateOpts{id: "a", score: 8})
	b := newCandidate(candidateOpts{id: "b", score: 8})
	c := newCandidate(candidateOpts{id: "c", score: 8})

	input := []*model.Candidate{b, c, a}
	ranked := RankCandidates(input, DefaultScoreEpsilon)

	assert.Equal(t, input, ranked)
	assert.NotSame(t, &input[0], &ranked[0], "ranking works on a copy")
}

func TestCompareCandidates(t *testing.T) {
	a := newCandidate(candidateOpts{id: "a", score: 8})
	b := newCandidate(candidateOpts{id: "b", score: 7})

	assert.Negative(t, CompareCandidates(a, b, DefaultScoreEpsilon))
	assert.Positive(t, CompareCandidates(b, a, DefaultScoreEpsilon))
	assert.Zero(t, CompareCandidates(a, a, DefaultScoreEpsilon))
}
