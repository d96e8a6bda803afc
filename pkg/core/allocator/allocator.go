package allocator

import "github.com/jakechorley/eeep-admissions/pkg/core/model"

// Allocator runs the seat allocation of a single course
type Allocator struct {
	ranked    []*model.Candidate
	seats     *Seats
	allocated map[*model.Candidate]bool
	selected  model.CategoryLists
}

// AllocationConfig contains the input of one course's allocation run
type AllocationConfig struct {
	// Course name copied into the result
	Course string

	// Candidates of this course, already scored and classified
	Candidates []*model.Candidate

	// Capacity is the seat table of the course
	Capacity model.Capacity

	// ScoreEpsilon is the final-score tolerance used by the ranking (defaults to DefaultScoreEpsilon)
	ScoreEpsilon float64
}

// AllocationOutcome represents the result of one course's allocation
type AllocationOutcome struct {
	// Result holds the selected and waiting lists
	Result model.CourseResult

	// Reversion records the unfilled seats moved into public broad
	Reversion Reversion

	// ValidationErrors contains any invariant violations found in the result
	ValidationErrors []ValidationError
}

// Allocate ranks the course's candidates, runs the quota phases, reverts
// unfilled seats, fills the reverted seats and builds the waiting lists.
//
// The run is deterministic and does not modify the candidates.
func Allocate(config AllocationConfig) *AllocationOutcome {
	epsilon := config.ScoreEpsilon
	if epsilon <= 0 {
		epsilon = DefaultScoreEpsilon
	}

	allocator := &Allocator{
		ranked:    RankCandidates(config.Candidates, epsilon),
		seats:     NewSeats(config.Capacity),
		allocated: make(map[*model.Candidate]bool, len(config.Candidates)),
	}

	// Phases 1-3: disability, regional, broad
	for _, phase := range QuotaPhases() {
		allocator.runPhase(phase, false)
	}

	// Phase 4: seat reversion
	reversion := allocator.seats.Revert()

	// Phase 5: remainder over the enlarged public broad pool
	allocator.runPhase(RemainderPhase{}, true)

	outcome := &AllocationOutcome{
		Result: model.CourseResult{
			Course:   config.Course,
			Capacity: config.Capacity,
			Selected: allocator.selected,
			Waiting:  BuildWaitlists(allocator.unallocated()),
		},
		Reversion: reversion,
	}
	outcome.ValidationErrors = ValidateResult(&outcome.Result)

	return outcome
}

// runPhase walks the ranked candidates once, allocating each candidate the
// phase targets while its category still has seats
func (a *Allocator) runPhase(phase Phase, viaReversion bool) {
	for _, candidate := range a.ranked {
		if a.allocated[candidate] {
			continue
		}

		category, ok := phase.Target(candidate)
		if !ok {
			continue
		}

		if a.seats.Take(category) {
			a.allocate(candidate, category, viaReversion)
		}
	}
}

// allocate appends the candidate to the category's selected list.
// The rank is the candidate's position in that list.
func (a *Allocator) allocate(candidate *model.Candidate, category model.Category, viaReversion bool) {
	a.selected.Append(category, model.Entry{
		Candidate:    candidate,
		Status:       model.StatusSelected,
		AllocatedIn:  category,
		ViaReversion: viaReversion,
	})
	a.allocated[candidate] = true
}

// unallocated returns the candidates no phase selected, in ranking order
func (a *Allocator) unallocated() []*model.Candidate {
	remaining := make([]*model.Candidate, 0, len(a.ranked))
	for _, candidate := range a.ranked {
		if !a.allocated[candidate] {
			remaining = append(remaining, candidate)
		}
	}
	return remaining
}
