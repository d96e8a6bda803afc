package allocator

import "github.com/jakechorley/eeep-admissions/pkg/core/model"

// BuildWaitlists places every unallocated candidate in the waiting list of
// each category they are eligible for. Candidates must already be in ranking order.
//
// Each list ranks independently, so one candidate can hold a different rank
// in up to three lists. Lists are not deduplicated against each other.
func BuildWaitlists(unallocated []*model.Candidate) model.CategoryLists {
	var waiting model.CategoryLists

	for _, candidate := range unallocated {
		for _, category := range waitlistCategories(candidate) {
			waiting.Append(category, model.Entry{
				Candidate: candidate,
				Status:    model.StatusWaitlisted,
			})
		}
	}

	return waiting
}

// waitlistCategories returns the candidate's eligibilities in publication order
func waitlistCategories(candidate *model.Candidate) []model.Category {
	categories := make([]model.Category, 0, len(candidate.Eligibilities))
	for _, category := range model.Categories {
		if candidate.IsEligible(category) {
			categories = append(categories, category)
		}
	}
	return categories
}
