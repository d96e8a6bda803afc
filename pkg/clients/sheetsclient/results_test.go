package sheetsclient

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

func TestTabTitle(t *testing.T) {
	assert.Equal(t, "Redes de Computadores", TabTitle(" Redes de Computadores "))
	assert.Equal(t, "Comércio-Vendas", TabTitle("Comércio/Vendas"))
	assert.Equal(t, "SEM CURSO", TabTitle(""))
	assert.Len(t, []rune(TabTitle(strings.Repeat("Á", 150))), maxTabTitleLength)
}

func TestBuildCourseRows(t *testing.T) {
	ana := &model.Candidate{
		Name:               "ANA",
		RegistrationNumber: "12",
		BirthDate:          time.Date(2011, time.March, 5, 0, 0, 0, 0, time.UTC),
		Scores:             model.Scores{Final: 8.756, Portuguese: 9.5, Mathematics: 7.25},
		Eligibilities:      []model.Category{model.CategoryPublicBroad, model.CategoryDisability},
		Warnings:           []string{"a", "b"},
	}

	result := &model.CourseResult{Course: "Redes", Capacity: model.DefaultCapacity}
	result.Selected.Append(model.CategoryPublicBroad, model.Entry{
		Candidate:    ana,
		Status:       model.StatusSelected,
		AllocatedIn:  model.CategoryPublicBroad,
		ViaReversion: true,
	})

	rows := BuildCourseRows(result)

	assert.Equal(t, []interface{}{"CURSO: Redes"}, rows[0])
	assert.Equal(t, []interface{}{"Vagas: 45"}, rows[1])

	var entryRows [][]interface{}
	emptyLists := 0
	for _, row := range rows {
		if len(row) == len(resultColumns) && row[0] != "Posição" {
			entryRows = append(entryRows, row)
		}
		if len(row) == 3 && row[2] == model.EmptyListMessage {
			emptyLists++
		}
	}

	require.Len(t, entryRows, 1)
	assert.Equal(t, []interface{}{
		1, "12", "ANA [PCD]", "05/03/2011", "8,76", "9,50", "7,25", "CLASSIFICADO",
		"PÚBLICA - AMPLA (REMANEJO)", "PUBLICA_AMPLA, PCD", "a; b",
	}, entryRows[0])
	assert.Equal(t, 9, emptyLists)
}

func TestBuildCourseRows_QuotaNoteUnderNonEmptyQuotaLists(t *testing.T) {
	c := &model.Candidate{Name: "BIA", Eligibilities: []model.Category{model.CategoryPublicBroad, model.CategoryPublicRegional}}
	result := &model.CourseResult{Course: "Redes"}
	result.Waiting.Append(model.CategoryPublicRegional, model.Entry{Candidate: c, Status: model.StatusWaitlisted})
	result.Waiting.Append(model.CategoryPublicBroad, model.Entry{Candidate: c, Status: model.StatusWaitlisted})

	notes := 0
	for _, row := range BuildCourseRows(result) {
		if len(row) == 3 && row[2] == model.QuotaListNote {
			notes++
		}
	}

	assert.Equal(t, 1, notes)
}

func TestStringValues(t *testing.T) {
	out := stringValues([][]interface{}{
		{"NOME COMPLETO", "NOTA"},
		{"Ana", 8.5},
		{nil},
	})

	assert.Equal(t, [][]string{
		{"NOME COMPLETO", "NOTA"},
		{"Ana", "8.5"},
		{""},
	}, out)
}
