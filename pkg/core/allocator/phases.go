package allocator

import (
	"github.com/jakechorley/eeep-admissions/pkg/core/eligibility"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// Phase is one ordered pass over the ranked candidates.
// Each pass only sees candidates no earlier pass has allocated.
type Phase interface {
	// Name returns a human-readable identifier for this phase
	Name() string

	// Target returns the category the phase would place the candidate in.
	// Returns false if the phase does not consider the candidate at all.
	Target(candidate *model.Candidate) (model.Category, bool)
}

// DisabilityPhase fills the disability quota with disabled candidates
type DisabilityPhase struct{}

func (DisabilityPhase) Name() string { return "disability" }

func (DisabilityPhase) Target(c *model.Candidate) (model.Category, bool) {
	return model.CategoryDisability, c.IsDisabled
}

// RegionalPhase fills each network's regional quota with resident candidates
type RegionalPhase struct{}

func (RegionalPhase) Name() string { return "regional" }

func (RegionalPhase) Target(c *model.Candidate) (model.Category, bool) {
	return eligibility.RegionalCategory(c.Network), c.IsResident
}

// BroadPhase fills each network's broad list with everyone left
type BroadPhase struct{}

func (BroadPhase) Name() string { return "broad" }

func (BroadPhase) Target(c *model.Candidate) (model.Category, bool) {
	return eligibility.BroadCategory(c.Network), true
}

// RemainderPhase fills reverted public broad seats with public-network candidates.
// Private-network candidates get no matching pass.
type RemainderPhase struct{}

func (RemainderPhase) Name() string { return "remainder" }

func (RemainderPhase) Target(c *model.Candidate) (model.Category, bool) {
	return model.CategoryPublicBroad, c.Network == model.NetworkPublic
}

// QuotaPhases are the passes that run before seat reversion, in order
func QuotaPhases() []Phase {
	return []Phase{
		DisabilityPhase{},
		RegionalPhase{},
		BroadPhase{},
	}
}
