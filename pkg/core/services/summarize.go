package services

import (
	"sort"
	"strings"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// Stats are the aggregate figures of a run across every course
type Stats struct {
	// UniqueCandidates counts candidates once even when they sit in several waiting lists
	UniqueCandidates int
	Selected         int
	Waitlisted       int

	PublicSchool  int
	PrivateSchool int
	Residents     int
	Disabled      int

	ViaReversion int

	// Data-quality counters, from candidate warnings
	CandidatesWithWarnings int
	RescaledGrades         int
	IgnoredGrades          int
	MissingRegistrations   int
	InvalidBirthDates      int

	// DuplicateRegistrations lists registration numbers shared by more than one candidate
	DuplicateRegistrations []string

	DroppedRows      int
	UnmatchedCourses int

	CutOffs []CutOff
}

// CutOff is the final score of the last selected candidate of a list
type CutOff struct {
	Course   string
	Category model.Category
	Score    float64
	Seats    int
	Filled   int
}

// Summarize computes the run statistics of a summary
func Summarize(summary *model.Summary) Stats {
	stats := Stats{
		DroppedRows:      summary.DroppedRows,
		UnmatchedCourses: summary.UnmatchedCourses,
	}

	seen := make(map[*model.Candidate]bool)
	selected := make(map[*model.Candidate]bool)
	registrations := make(map[string]int)

	count := func(c *model.Candidate) {
		if seen[c] {
			return
		}
		seen[c] = true
		registrations[c.RegistrationNumber]++

		if c.Network == model.NetworkPrivate {
			stats.PrivateSchool++
		} else {
			stats.PublicSchool++
		}
		if c.IsResident {
			stats.Residents++
		}
		if c.IsDisabled {
			stats.Disabled++
		}

		if len(c.Warnings) > 0 {
			stats.CandidatesWithWarnings++
		}
		for _, w := range c.Warnings {
			switch {
			case strings.Contains(w, "ajustada"):
				stats.RescaledGrades++
			case strings.Contains(w, "ignorada"):
				stats.IgnoredGrades++
			case strings.Contains(w, "inscrição ausente"):
				stats.MissingRegistrations++
			case strings.Contains(w, "Data de nascimento"):
				stats.InvalidBirthDates++
			}
		}
	}

	for i := range summary.Results {
		result := &summary.Results[i]

		for _, category := range model.Categories {
			list := result.Selected.List(category)
			for _, entry := range list {
				count(entry.Candidate)
				selected[entry.Candidate] = true
				if entry.ViaReversion {
					stats.ViaReversion++
				}
			}

			cutOff := CutOff{
				Course:   result.Course,
				Category: category,
				Seats:    result.Capacity.Seats(category),
				Filled:   len(list),
			}
			if len(list) > 0 {
				cutOff.Score = list[len(list)-1].Candidate.Scores.Final
			}
			stats.CutOffs = append(stats.CutOffs, cutOff)
		}

		for _, entry := range result.Waiting.All() {
			count(entry.Candidate)
		}
	}

	stats.UniqueCandidates = len(seen)
	stats.Selected = len(selected)
	stats.Waitlisted = stats.UniqueCandidates - stats.Selected

	for registration, n := range registrations {
		if n > 1 && registration != "" {
			stats.DuplicateRegistrations = append(stats.DuplicateRegistrations, registration)
		}
	}
	sort.Strings(stats.DuplicateRegistrations)

	return stats
}
