package allocator

import (
	"fmt"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// ValidateResult checks a course result against the allocation invariants.
// Returns a slice of validation errors; an empty slice indicates a valid result.
//
// Checked:
//   - selected seats never exceed the course's total capacity
//   - each list ranks its entries 1..n in order
//   - no candidate is selected twice or both selected and waitlisted
//   - every entry sits in a list the candidate is eligible for
func ValidateResult(result *model.CourseResult) []ValidationError {
	var errors []ValidationError

	fail := func(list, format string, args ...any) {
		errors = append(errors, ValidationError{
			Course:      result.Course,
			List:        list,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if selected, total := result.Selected.Len(), result.Capacity.Total(); selected > total {
		fail("selected", "%d candidates selected for %d seats", selected, total)
	}

	selectedIDs := make(map[string]bool)
	for _, category := range model.Categories {
		for i, entry := range result.Selected.List(category) {
			id := entry.Candidate.ID
			if selectedIDs[id] {
				fail(string(category), "candidate %s selected more than once", id)
			}
			selectedIDs[id] = true
			checkEntry(fail, "selected "+string(category), category, i, entry)
		}
	}

	for _, category := range model.Categories {
		seen := make(map[string]bool)
		for i, entry := range result.Waiting.List(category) {
			id := entry.Candidate.ID
			if selectedIDs[id] {
				fail("waiting "+string(category), "candidate %s is both selected and waitlisted", id)
			}
			if seen[id] {
				fail("waiting "+string(category), "candidate %s listed more than once", id)
			}
			seen[id] = true
			checkEntry(fail, "waiting "+string(category), category, i, entry)
		}
	}

	return errors
}

func checkEntry(fail func(list, format string, args ...any), list string, category model.Category, index int, entry model.Entry) {
	if entry.Rank != index+1 {
		fail(list, "candidate %s has rank %d at position %d", entry.Candidate.ID, entry.Rank, index+1)
	}
	if !entry.Candidate.IsEligible(category) {
		fail(list, "candidate %s is not eligible for %s", entry.Candidate.ID, category)
	}
}
