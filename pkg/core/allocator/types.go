package allocator

import "github.com/jakechorley/eeep-admissions/pkg/core/model"

// DefaultScoreEpsilon is the final-score difference below which two candidates tie
const DefaultScoreEpsilon = 1e-4

// Seats is the working capacity table of one allocation run.
// It is owned by a single Allocate call and never shared across courses.
type Seats struct {
	remaining model.Capacity
}

// NewSeats creates a working copy of a capacity table
func NewSeats(capacity model.Capacity) *Seats {
	return &Seats{remaining: capacity}
}

// Remaining returns the seats still open in a category
func (s *Seats) Remaining(category model.Category) int {
	return s.remaining.Seats(category)
}

// Take claims one seat in the category. Returns false when none are left.
// Seats are only decremented while strictly positive, so no category goes negative.
func (s *Seats) Take(category model.Category) bool {
	slot := s.slot(category)
	if slot == nil || *slot <= 0 {
		return false
	}
	*slot--
	return true
}

// Revert moves every unfilled quota seat and every unfilled private-broad seat
// into the public broad pool. The policy is fixed: private surplus never stays
// in the private network.
func (s *Seats) Revert() Reversion {
	r := Reversion{
		Disability:      s.remaining.Disability,
		PublicRegional:  s.remaining.PublicRegional,
		PrivateRegional: s.remaining.PrivateRegional,
		PrivateBroad:    s.remaining.PrivateBroad,
	}

	s.remaining.PublicBroad += r.Total()
	s.remaining.Disability = 0
	s.remaining.PublicRegional = 0
	s.remaining.PrivateRegional = 0
	s.remaining.PrivateBroad = 0

	return r
}

func (s *Seats) slot(category model.Category) *int {
	switch category {
	case model.CategoryDisability:
		return &s.remaining.Disability
	case model.CategoryPublicRegional:
		return &s.remaining.PublicRegional
	case model.CategoryPublicBroad:
		return &s.remaining.PublicBroad
	case model.CategoryPrivateRegional:
		return &s.remaining.PrivateRegional
	case model.CategoryPrivateBroad:
		return &s.remaining.PrivateBroad
	}
	return nil
}

// Reversion records how many unfilled seats each category handed to public broad
type Reversion struct {
	Disability      int
	PublicRegional  int
	PrivateRegional int
	PrivateBroad    int
}

// Total returns the number of seats added to public broad
func (r Reversion) Total() int {
	return r.Disability + r.PublicRegional + r.PrivateRegional + r.PrivateBroad
}

// ValidationError describes a broken invariant in an allocation result
type ValidationError struct {
	Course      string
	List        string
	Description string
}

func (e ValidationError) Error() string {
	return e.Course + " [" + e.List + "]: " + e.Description
}
