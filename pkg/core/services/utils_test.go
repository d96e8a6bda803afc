package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
	"github.com/jakechorley/eeep-admissions/pkg/core/scoring"
	"github.com/jakechorley/eeep-admissions/pkg/db"
)

var fixedNow = time.Date(2026, time.January, 20, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// mockStore implements db.ResultStore in memory
type mockStore struct {
	runs    []db.Run
	entries map[string][]db.RunEntry

	insertErr error
	getErr    error
}

func newMockStore() *mockStore {
	return &mockStore{entries: make(map[string][]db.RunEntry)}
}

func (m *mockStore) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs = append(m.runs, *run)
	m.entries[run.ID] = entries
	return nil
}

func (m *mockStore) GetRuns(ctx context.Context) ([]db.Run, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.runs, nil
}

func (m *mockStore) GetRunEntries(ctx context.Context, runID string) ([]db.RunEntry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[runID], nil
}

// mockPublisher records published summaries
type mockPublisher struct {
	sheetID   string
	published *model.Summary
	err       error
}

func (m *mockPublisher) PublishResults(spreadsheetID string, summary *model.Summary) error {
	m.sheetID = spreadsheetID
	m.published = summary
	return m.err
}

// mockSheet serves fixed applicant rows
type mockSheet struct {
	rows  []map[string]string
	calls []string
}

func (m *mockSheet) ListApplicantRows(spreadsheetID, tab string) ([]map[string]string, error) {
	m.calls = append(m.calls, spreadsheetID+"/"+tab)
	return m.rows, nil
}

// mockForm serves fixed applicant rows
type mockForm struct {
	rows  []map[string]string
	calls []string
}

func (m *mockForm) ListApplicantRows(formID string) ([]map[string]string, error) {
	m.calls = append(m.calls, formID)
	return m.rows, nil
}

// mockMailer records sent emails and fails for the listed recipients
type mockMailer struct {
	sent   []string
	fail   map[string]bool
	bodies []string
}

func (m *mockMailer) SendEmail(to, subject, body string) error {
	if m.fail[to] {
		return fmt.Errorf("mailbox unavailable")
	}
	m.sent = append(m.sent, to)
	m.bodies = append(m.bodies, subject+"\n"+body)
	return nil
}

func testConfig() *config.Config {
	required := true
	return &config.Config{
		Courses: []config.Course{
			{Name: "Enfermagem", Capacity: &model.Capacity{Disability: 1, PublicRegional: 1, PublicBroad: 1, PrivateRegional: 1, PrivateBroad: 1}},
			{Name: "Informática", Capacity: &model.Capacity{PublicBroad: 2}},
		},
		DefaultCapacity:      &model.DefaultCapacity,
		RegionKeyword:        "CENTRO",
		PrivateSchoolKeyword: "PRIVADA",
		DisabilityKeywords:   []string{"DEFICIENCIA", "PCD"},
		RequireRegistration:  &required,
		ScoreEpsilon:         1e-4,
	}
}

type applicant struct {
	name         string
	course       string
	grade        string
	neighborhood string
	school       string
	quota        string
}

// applicantRows builds form rows where every grade of an applicant is the same value.
// Registration numbers follow row order starting at 1.
func applicantRows(list ...applicant) []map[string]string {
	rows := make([]map[string]string, 0, len(list))
	for i, a := range list {
		row := map[string]string{
			"NOME COMPLETO":       a.name,
			"NÚMERO DE INSCRIÇÃO": fmt.Sprint(i + 1),
			"DATA DE NASCIMENTO":  "01/06/2011",
			"OPÇÃO DE CURSO":      a.course,
			"BAIRRO":              a.neighborhood,
			"ESCOLA DE ORIGEM":    a.school,
			"COTA DE ESCOLHA":     a.quota,
		}
		for _, subject := range scoring.Subjects {
			for _, period := range scoring.Years {
				row[subject+" - "+period.Column] = a.grade
			}
			for _, period := range scoring.Bimesters {
				row[subject+" - "+period.Column] = a.grade
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func names(entries []model.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Candidate.Name
	}
	return out
}
