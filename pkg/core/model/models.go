package model

import "time"

// Network is the school network a candidate comes from
type Network string

const (
	NetworkPublic  Network = "PÚBLICA"
	NetworkPrivate Network = "PRIVADA"
)

// Category is one of the five quota categories a seat or waiting list belongs to
type Category string

const (
	CategoryDisability      Category = "PCD"
	CategoryPublicRegional  Category = "PUBLICA_CENTRO"
	CategoryPublicBroad     Category = "PUBLICA_AMPLA"
	CategoryPrivateRegional Category = "PRIVADA_CENTRO"
	CategoryPrivateBroad    Category = "PRIVADA_AMPLA"
)

// Categories lists every category in publication order
var Categories = []Category{
	CategoryDisability,
	CategoryPublicRegional,
	CategoryPublicBroad,
	CategoryPrivateRegional,
	CategoryPrivateBroad,
}

// Label returns the allocated-in label used on published lists
func (c Category) Label() string {
	switch c {
	case CategoryDisability:
		return "PCD"
	case CategoryPublicRegional:
		return "PÚBLICA - REGIÃO"
	case CategoryPublicBroad:
		return "PÚBLICA - AMPLA"
	case CategoryPrivateRegional:
		return "PRIVADA - REGIÃO"
	case CategoryPrivateBroad:
		return "PRIVADA - AMPLA"
	}
	return string(c)
}

// IsRegional reports whether the category is a neighborhood quota
func (c Category) IsRegional() bool {
	return c == CategoryPublicRegional || c == CategoryPrivateRegional
}

// Status is the allocation outcome of a list entry
type Status string

const (
	StatusUnallocated Status = ""
	StatusSelected    Status = "SELECTED"
	StatusWaitlisted  Status = "WAITING"
)

// Label returns the status as printed on published lists
func (s Status) Label() string {
	switch s {
	case StatusSelected:
		return "CLASSIFICADO"
	case StatusWaitlisted:
		return "CLASSIFICÁVEL"
	}
	return "-"
}

// YearAverage is the mean grade of one school year
type YearAverage struct {
	Value float64
	// HasGrades is false when every grade of the year was blank.
	// Such years are excluded from the final score.
	HasGrades bool
}

// Scores holds every derived score of a candidate
type Scores struct {
	Year6 YearAverage
	Year7 YearAverage
	Year8 YearAverage
	Year9 YearAverage

	// Tie-break subject averages
	Portuguese  float64
	Mathematics float64

	Final float64
}

// Candidate is one applicant row after scoring and classification.
// It is never mutated by allocation; outcomes live in Entry views.
type Candidate struct {
	ID                 string
	RegistrationNumber string
	Timestamp          string
	Name               string
	BirthDate          time.Time
	Course             string
	Municipality       string
	Neighborhood       string
	ClaimedQuota       string

	Network    Network
	IsResident bool
	IsDisabled bool

	Scores Scores

	// Eligibilities is computed once at intake
	Eligibilities []Category

	Warnings []string
}

// IsEligible reports whether the candidate qualifies for the category
func (c *Candidate) IsEligible(category Category) bool {
	for _, e := range c.Eligibilities {
		if e == category {
			return true
		}
	}
	return false
}

// Capacity is the seat table of one course
type Capacity struct {
	Disability      int `yaml:"disability" validate:"min=0"`
	PublicRegional  int `yaml:"publicRegional" validate:"min=0"`
	PublicBroad     int `yaml:"publicBroad" validate:"min=0"`
	PrivateRegional int `yaml:"privateRegional" validate:"min=0"`
	PrivateBroad    int `yaml:"privateBroad" validate:"min=0"`
}

// DefaultCapacity is the Annex I table for a 45-seat class
var DefaultCapacity = Capacity{
	Disability:      2,
	PublicRegional:  10,
	PublicBroad:     24,
	PrivateRegional: 3,
	PrivateBroad:    6,
}

// Total returns the number of seats across all categories
func (c Capacity) Total() int {
	return c.Disability + c.PublicRegional + c.PublicBroad + c.PrivateRegional + c.PrivateBroad
}

// Seats returns the seat count of a single category
func (c Capacity) Seats(category Category) int {
	switch category {
	case CategoryDisability:
		return c.Disability
	case CategoryPublicRegional:
		return c.PublicRegional
	case CategoryPublicBroad:
		return c.PublicBroad
	case CategoryPrivateRegional:
		return c.PrivateRegional
	case CategoryPrivateBroad:
		return c.PrivateBroad
	}
	return 0
}
