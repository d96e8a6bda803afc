package applicants

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/eeep-admissions/pkg/core/eligibility"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
	"github.com/jakechorley/eeep-admissions/pkg/core/scoring"
)

const (
	warnMissingRegistration = "Número de inscrição ausente; gerado automaticamente."
	warnInvalidBirthDate    = "Data de nascimento inválida (%q); considerada como a mais recente."
)

// Options controls how raw rows are interpreted
type Options struct {
	// Courses are the configured course names; a row's course option is
	// matched against them ignoring accents and case
	Courses []string

	// RegionKeyword marks a neighborhood as inside the school's region
	RegionKeyword string

	// PrivateSchoolKeyword marks an origin school as private
	PrivateSchoolKeyword string

	// DisabilityKeywords mark a claimed quota as the disability quota
	DisabilityKeywords []string

	// RequireRegistration drops rows without a registration number.
	// When false the number is synthesized from the row position.
	RequireRegistration bool

	// Now is the fallback birth date for unparsable dates (defaults to time.Now)
	Now func() time.Time
}

// ParseResult holds the candidates built from a batch of rows
type ParseResult struct {
	Candidates []*model.Candidate

	// Dropped counts rows without the required identity fields
	Dropped int
}

// Parse builds scored and classified candidates from raw rows.
// Rows without a name, and without a registration number when one is required, are dropped.
func Parse(rawRows []map[string]string, opts Options) ParseResult {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var result ParseResult
	for _, raw := range rawRows {
		row := NewRow(raw)

		name := strings.TrimSpace(row.Get(ColumnName...))
		registration := cleanRegistration(row.Get(ColumnRegistration...))
		if name == "" || (opts.RequireRegistration && registration == "") {
			result.Dropped++
			continue
		}

		index := len(result.Candidates)
		result.Candidates = append(result.Candidates, buildCandidate(row, index, name, registration, opts, now))
	}

	return result
}

func buildCandidate(row Row, index int, name, registration string, opts Options, now func() time.Time) *model.Candidate {
	var warnings []string

	if registration == "" {
		registration = strconv.Itoa(index + 1)
		warnings = append(warnings, warnMissingRegistration)
	}

	network := model.NetworkPublic
	if containsKeyword(row.Get(ColumnSchool...), opts.PrivateSchoolKeyword) {
		network = model.NetworkPrivate
	}

	neighborhood := row.Get(ColumnNeighborhood...)
	resident := containsKeyword(neighborhood, opts.RegionKeyword)

	quota := row.Get(ColumnQuota...)
	disabled := containsKeyword(quota, opts.DisabilityKeywords...)

	rawBirth := row.Get(ColumnBirthDate...)
	birthDate, err := ParseBirthDate(rawBirth)
	if err != nil {
		birthDate = now()
		warnings = append(warnings, fmt.Sprintf(warnInvalidBirthDate, rawBirth))
	}

	scores, gradeWarnings := scoring.Score(func(subject string, period scoring.Period) string {
		return row.Get(subject + " - " + period.Column)
	})
	warnings = append(warnings, gradeWarnings...)

	return &model.Candidate{
		ID:                 fmt.Sprintf("%d-%s", index, name),
		RegistrationNumber: registration,
		Timestamp:          row.Get(ColumnTimestamp...),
		Name:               strings.ToUpper(name),
		BirthDate:          birthDate,
		Course:             ResolveCourse(row.Get(ColumnCourse...), opts.Courses),
		Municipality:       row.Get(ColumnMunicipality...),
		Neighborhood:       neighborhood,
		ClaimedQuota:       quota,
		Network:            network,
		IsResident:         resident,
		IsDisabled:         disabled,
		Scores:             scores,
		Eligibilities:      eligibility.Classify(network, resident, disabled),
		Warnings:           warnings,
	}
}

// ResolveCourse maps a course option onto the configured course name.
// Unknown options are returned trimmed but otherwise unchanged.
func ResolveCourse(raw string, courses []string) string {
	normalized := NormalizeText(raw)
	for _, course := range courses {
		if NormalizeText(course) == normalized {
			return course
		}
	}
	return strings.TrimSpace(raw)
}

// ParseBirthDate parses a dd/mm/yyyy date
func ParseBirthDate(raw string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errYear := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range %q", raw)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func cleanRegistration(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
}

// containsKeyword reports whether the normalized text contains any normalized keyword
func containsKeyword(text string, keywords ...string) bool {
	normalized := NormalizeText(text)
	for _, keyword := range keywords {
		k := NormalizeText(keyword)
		if k != "" && strings.Contains(normalized, k) {
			return true
		}
	}
	return false
}
