package scoring

import (
	"fmt"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// Subjects graded in every school year, in column order
var Subjects = []string{
	SubjectPortuguese,
	SubjectMathematics,
	"HISTÓRIA",
	"GEOGRAFIA",
	"CIÊNCIAS",
	"ARTE",
	"ENSINO RELIGIOSO",
	"INGLÊS",
	"EDUCAÇÃO FÍSICA",
}

// Tie-break subjects
const (
	SubjectPortuguese  = "PORTUGUÊS"
	SubjectMathematics = "MATEMÁTICA"
)

// Period identifies a grade column suffix
type Period struct {
	// Column is the suffix used in the spreadsheet header, e.g. "6º ANO"
	Column string
	// Tag prefixes warnings raised for the period
	Tag string
}

// Annual periods, one grade per subject per year
var (
	Year6 = Period{Column: "6º ANO", Tag: "6º"}
	Year7 = Period{Column: "7º ANO", Tag: "7º"}
	Year8 = Period{Column: "8º ANO", Tag: "8º"}
)

// Years lists the annual periods in column order
var Years = []Period{Year6, Year7, Year8}

// Bimesters of the 9th year, which is still in progress at application time
var Bimesters = []Period{
	{Column: "1º BIMESTRE", Tag: "9º-B1"},
	{Column: "2º BIMESTRE", Tag: "9º-B2"},
	{Column: "3º BIMESTRE", Tag: "9º-B3"},
}

// tieBreakSlots is the fixed divisor of the tie-break subject averages.
// It matches the number of school-year slots and is not renormalized by
// the number of non-blank grades.
const tieBreakSlots = 4

// GradeLookup returns the raw grade text of a subject in a period
type GradeLookup func(subject string, period Period) string

// Score computes every derived score of a candidate from its raw grades.
// Warnings are returned in subject then period order.
func Score(lookup GradeLookup) (model.Scores, []string) {
	var (
		scores   model.Scores
		warnings []string
	)

	read := func(subject string, period Period) Grade {
		g := ParseGrade(lookup(subject, period))
		if g.Warning != "" {
			warnings = append(warnings, fmt.Sprintf("%s %s: %s", subject, period.Tag, g.Warning))
		}
		return g
	}

	annualTotals := make([]average, len(Years))
	var year9 average
	var portuguese, mathematics float64

	for _, subject := range Subjects {
		var tieBreak float64

		// Years 6-8: one annual grade each
		for i, period := range Years {
			g := read(subject, period)
			if g.Blank {
				continue
			}
			annualTotals[i].add(g.Value)
			tieBreak += g.Value
		}

		// Year 9: mean of the recorded bimesters, subjects with none are skipped
		var subject9 average
		for _, period := range Bimesters {
			g := read(subject, period)
			if !g.Blank {
				subject9.add(g.Value)
			}
		}
		if subject9.count > 0 {
			year9.add(subject9.mean())
			tieBreak += subject9.mean()
		}

		switch subject {
		case SubjectPortuguese:
			portuguese = tieBreak
		case SubjectMathematics:
			mathematics = tieBreak
		}
	}

	scores.Year6 = annualTotals[0].yearAverage()
	scores.Year7 = annualTotals[1].yearAverage()
	scores.Year8 = annualTotals[2].yearAverage()
	scores.Year9 = year9.yearAverage()
	scores.Portuguese = portuguese / tieBreakSlots
	scores.Mathematics = mathematics / tieBreakSlots
	scores.Final = FinalScore(scores.Year6, scores.Year7, scores.Year8, scores.Year9)

	return scores, warnings
}

// FinalScore is the mean of the year averages that have at least one grade.
// Returns 0 when no year has any grade.
func FinalScore(years ...model.YearAverage) float64 {
	var total average
	for _, y := range years {
		if y.HasGrades {
			total.add(y.Value)
		}
	}
	return total.mean()
}

// average accumulates a running mean over non-blank values
type average struct {
	sum   float64
	count int
}

func (a *average) add(v float64) {
	a.sum += v
	a.count++
}

func (a average) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

func (a average) yearAverage() model.YearAverage {
	return model.YearAverage{Value: a.mean(), HasGrades: a.count > 0}
}
