package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/eeep-admissions/pkg/core/eligibility"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// candidateOpts describes a test candidate; zero values mean public, non-resident, not disabled
type candidateOpts struct {
	id        string
	score     float64
	birth     string
	network   model.Network
	resident  bool
	disabled  bool
	port, mat float64
}

func newCandidate(o candidateOpts) *model.Candidate {
	network := o.network
	if network == "" {
		network = model.NetworkPublic
	}
	birth := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	if o.birth != "" {
		birth, _ = time.Parse("2006-01-02", o.birth)
	}

	return &model.Candidate{
		ID:                 o.id,
		RegistrationNumber: o.id,
		Name:               "CANDIDATE " + o.id,
		BirthDate:          birth,
		Network:            network,
		IsResident:         o.resident,
		IsDisabled:         o.disabled,
		Scores: model.Scores{
			Final:       o.score,
			Portuguese:  o.port,
			Mathematics: o.mat,
		},
		Eligibilities: eligibility.Classify(network, o.resident, o.disabled),
	}
}

// pool creates n candidates sharing the given options, with descending scores
func pool(prefix string, n int, o candidateOpts) []*model.Candidate {
	candidates := make([]*model.Candidate, n)
	for i := range candidates {
		o.id = fmt.Sprintf("%s-%02d", prefix, i+1)
		o.score = 9.9 - float64(i)*0.01
		candidates[i] = newCandidate(o)
	}
	return candidates
}

func ids(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Candidate.ID
	}
	return out
}

func ranks(entries []model.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}
