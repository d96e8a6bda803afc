package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

func scenarioRows() []map[string]string {
	return applicantRows(
		applicant{name: "Ana", course: "enfermagem", grade: "9", neighborhood: "Centro", school: "EEF Municipal", quota: "PCD"},
		applicant{name: "Bia", course: "Enfermagem", grade: "8,5", neighborhood: "Centro", school: "EEF Municipal"},
		applicant{name: "Caio", course: "ENFERMAGEM", grade: "8", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "Dani", course: "Enfermagem", grade: "7", neighborhood: "Centro", school: "Colégio Privada"},
		applicant{name: "Edu", course: "Enfermagem", grade: "6", neighborhood: "Aldeota", school: "Escola Privada"},
		applicant{name: "Fabi", course: "Enfermagem", grade: "5", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "Gil", course: "Redes", grade: "4", neighborhood: "Centro", school: "EEF Municipal"},
		applicant{name: "Hugo", course: "Informatica", grade: "7", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "Ivo", course: "Informática", grade: "6", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "João", course: "informática", grade: "5", neighborhood: "Aldeota", school: "EEF Municipal"},
	)
}

func TestAllocateAdmissions(t *testing.T) {
	result, err := AllocateAdmissions(context.Background(), scenarioRows(), testConfig(), clock, zap.NewNop())
	require.NoError(t, err)

	assert.Empty(t, result.ValidationErrors)
	assert.Equal(t, 10, result.Summary.TotalProcessed)
	assert.Equal(t, 1, result.Summary.UnmatchedCourses)
	assert.Equal(t, []string{"Redes"}, result.UnmatchedCourseNames)

	require.Len(t, result.Summary.Results, 2)

	nursing := result.Summary.Results[0]
	assert.Equal(t, "Enfermagem", nursing.Course)
	assert.Equal(t, []string{"ANA"}, names(nursing.Selected.Disability))
	assert.Equal(t, []string{"BIA"}, names(nursing.Selected.PublicRegional))
	assert.Equal(t, []string{"CAIO"}, names(nursing.Selected.PublicBroad))
	assert.Equal(t, []string{"DANI"}, names(nursing.Selected.PrivateRegional))
	assert.Equal(t, []string{"EDU"}, names(nursing.Selected.PrivateBroad))
	assert.Equal(t, []string{"FABI"}, names(nursing.Waiting.PublicBroad))
	assert.Equal(t, 1, nursing.Waiting.Len())
	assert.Zero(t, result.Reversions["Enfermagem"].Total())

	it := result.Summary.Results[1]
	assert.Equal(t, "Informática", it.Course)
	assert.Equal(t, []string{"HUGO", "IVO"}, names(it.Selected.PublicBroad))
	assert.Equal(t, []string{"JOÃO"}, names(it.Waiting.PublicBroad))
}

func TestAllocateAdmissions_DropsRowsWithoutRegistration(t *testing.T) {
	rows := scenarioRows()
	rows[5]["NÚMERO DE INSCRIÇÃO"] = ""

	result, err := AllocateAdmissions(context.Background(), rows, testConfig(), clock, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.DroppedRows)
	assert.Equal(t, 9, result.Summary.TotalProcessed)
	assert.Empty(t, result.Summary.Results[0].Waiting.PublicBroad)
}

func TestAllocateAdmissions_RevertsUnfilledQuotaSeats(t *testing.T) {
	rows := applicantRows(
		applicant{name: "Ana", course: "Enfermagem", grade: "9", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "Bia", course: "Enfermagem", grade: "8", neighborhood: "Aldeota", school: "EEF Municipal"},
		applicant{name: "Caio", course: "Enfermagem", grade: "7", neighborhood: "Aldeota", school: "EEF Municipal"},
	)

	result, err := AllocateAdmissions(context.Background(), rows, testConfig(), clock, zap.NewNop())
	require.NoError(t, err)

	nursing := result.Summary.Results[0]
	require.Len(t, nursing.Selected.PublicBroad, 3)
	assert.False(t, nursing.Selected.PublicBroad[0].ViaReversion)
	assert.True(t, nursing.Selected.PublicBroad[1].ViaReversion)
	assert.True(t, nursing.Selected.PublicBroad[2].ViaReversion)
	assert.Equal(t, 4, result.Reversions["Enfermagem"].Total())

	// No seats in Informática and no candidates either
	assert.Zero(t, result.Summary.Results[1].Selected.Len())
}

func TestAllocateAdmissions_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AllocateAdmissions(ctx, scenarioRows(), testConfig(), clock, zap.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroupByCourse(t *testing.T) {
	a := &model.Candidate{ID: "a", Course: "Redes"}
	b := &model.Candidate{ID: "b", Course: "Química"}
	c := &model.Candidate{ID: "c", Course: "Redes"}
	d := &model.Candidate{ID: "d", Course: "Química"}

	byCourse, unmatched, unmatchedNames := groupByCourse([]*model.Candidate{a, b, c, d}, []string{"Redes"})

	assert.Equal(t, []*model.Candidate{a, c}, byCourse["Redes"])
	assert.Equal(t, 2, unmatched)
	assert.Equal(t, []string{"Química"}, unmatchedNames)
}
