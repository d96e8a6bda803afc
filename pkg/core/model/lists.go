package model

import (
	"strconv"
	"strings"
	"time"
)

// Text printed on published lists
const (
	EmptyListMessage = "Não há candidatos inscritos nesta modalidade."
	QuotaListNote    = "Candidatos cotistas concorrem primeiro nas vagas reservadas. Classificáveis aparecem também na lista de Ampla Concorrência."
)

// ListGroup is one titled list of a course as published
type ListGroup struct {
	Title    string
	Category Category
	Waiting  bool
	Entries  []Entry
}

// IsQuotaList reports whether the group is a reserved (disability or regional) list
func (g ListGroup) IsQuotaList() bool {
	return g.Category == CategoryDisability || g.Category.IsRegional()
}

// Groups returns the ten published lists of the course: selection lists first, then waiting lists
func (r *CourseResult) Groups() []ListGroup {
	groups := make([]ListGroup, 0, 2*len(Categories))
	for _, category := range Categories {
		groups = append(groups, ListGroup{
			Title:    "CLASSIFICADOS - " + listTitle(category),
			Category: category,
			Entries:  r.Selected.List(category),
		})
	}
	for _, category := range Categories {
		groups = append(groups, ListGroup{
			Title:    "CLASSIFICÁVEIS - " + listTitle(category),
			Category: category,
			Waiting:  true,
			Entries:  r.Waiting.List(category),
		})
	}
	return groups
}

func listTitle(category Category) string {
	switch category {
	case CategoryDisability:
		return "Cota PCD"
	case CategoryPublicRegional:
		return "Cota Regional (Centro) - Pública"
	case CategoryPublicBroad:
		return "Ampla Concorrência - Pública"
	case CategoryPrivateRegional:
		return "Cota Regional (Centro) - Privada"
	case CategoryPrivateBroad:
		return "Ampla Concorrência - Privada"
	}
	return string(category)
}

// DisplayName returns the candidate name followed by any quota badges, e.g. "ANA [PCD, Centro]"
func (e Entry) DisplayName() string {
	badges := e.QuotaBadges()
	if len(badges) == 0 {
		return e.Candidate.Name
	}
	return e.Candidate.Name + " [" + strings.Join(badges, ", ") + "]"
}

// FormatScore formats a score with two decimals and a comma separator, e.g. "8,75"
func FormatScore(score float64) string {
	return strings.Replace(strconv.FormatFloat(score, 'f', 2, 64), ".", ",", 1)
}

// FormatDate formats a date as dd/mm/yyyy
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// EligibilityCodes joins the candidate's categories, e.g. "PUBLICA_AMPLA, PCD"
func (c *Candidate) EligibilityCodes() string {
	codes := make([]string, len(c.Eligibilities))
	for i, e := range c.Eligibilities {
		codes[i] = string(e)
	}
	return strings.Join(codes, ", ")
}
