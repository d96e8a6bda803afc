package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jakechorley/eeep-admissions/pkg/core/allocator"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
	"github.com/jakechorley/eeep-admissions/pkg/core/services"
	"github.com/jakechorley/eeep-admissions/pkg/db"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	section = color.New(color.FgYellow)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgRed)
	dim     = color.New(color.Faint)
)

// entryColumns heads every list table; Port. and Mat. are the tie-break averages
var entryColumns = []string{"Pos.", "Inscrição", "Nome", "Nota", "Port.", "Mat.", "Alocado em"}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// printCourseResult prints the non-empty lists of one course
func printCourseResult(w io.Writer, result *model.CourseResult, reversion allocator.Reversion) {
	heading.Fprintf(w, "\n=== %s ===\n", result.Course)
	fmt.Fprintf(w, "Vagas: %d  Classificados: %d  Classificáveis: %d\n",
		result.Capacity.Total(), result.Selected.Len(), result.Waiting.Len())
	if reversion.Total() > 0 {
		warning.Fprintf(w, "Remanejo: %d vagas (PCD %d, Pública Centro %d, Privada Centro %d, Privada Ampla %d)\n",
			reversion.Total(), reversion.Disability, reversion.PublicRegional, reversion.PrivateRegional, reversion.PrivateBroad)
	}

	for _, group := range result.Groups() {
		if len(group.Entries) == 0 {
			continue
		}

		section.Fprintf(w, "\n%s\n", group.Title)
		table := newTable(w, entryColumns)
		for _, entry := range group.Entries {
			table.Append([]string{
				strconv.Itoa(entry.Rank),
				entry.Candidate.RegistrationNumber,
				entry.DisplayName(),
				model.FormatScore(entry.Candidate.Scores.Final),
				model.FormatScore(entry.Candidate.Scores.Portuguese),
				model.FormatScore(entry.Candidate.Scores.Mathematics),
				entry.AllocatedLabel(),
			})
		}
		table.Render()
	}
}

// printStats prints the run totals and the cut-off score of every list
func printStats(w io.Writer, stats services.Stats) {
	heading.Fprintln(w, "\n=== Resumo ===")

	table := newTable(w, []string{"Indicador", "Total"})
	table.AppendBulk([][]string{
		{"Candidatos", strconv.Itoa(stats.UniqueCandidates)},
		{"Classificados", strconv.Itoa(stats.Selected)},
		{"Classificáveis", strconv.Itoa(stats.Waitlisted)},
		{"Escola pública", strconv.Itoa(stats.PublicSchool)},
		{"Escola privada", strconv.Itoa(stats.PrivateSchool)},
		{"Residentes", strconv.Itoa(stats.Residents)},
		{"PCD", strconv.Itoa(stats.Disabled)},
		{"Vagas remanejadas ocupadas", strconv.Itoa(stats.ViaReversion)},
		{"Linhas descartadas", strconv.Itoa(stats.DroppedRows)},
		{"Curso não encontrado", strconv.Itoa(stats.UnmatchedCourses)},
	})
	table.Render()

	if stats.CandidatesWithWarnings > 0 {
		warning.Fprintf(w, "%d candidatos com avisos: %d notas ajustadas, %d notas ignoradas, %d inscrições geradas, %d datas inválidas\n",
			stats.CandidatesWithWarnings, stats.RescaledGrades, stats.IgnoredGrades,
			stats.MissingRegistrations, stats.InvalidBirthDates)
	}
	if len(stats.DuplicateRegistrations) > 0 {
		warning.Fprintf(w, "Inscrições duplicadas: %s\n", strings.Join(stats.DuplicateRegistrations, ", "))
	}

	section.Fprintln(w, "\nNotas de corte")
	cutOffs := newTable(w, []string{"Curso", "Lista", "Vagas", "Ocupadas", "Nota de corte"})
	for _, c := range stats.CutOffs {
		score := "-"
		if c.Filled > 0 {
			score = model.FormatScore(c.Score)
		}
		cutOffs.Append([]string{c.Course, c.Category.Label(), strconv.Itoa(c.Seats), strconv.Itoa(c.Filled), score})
	}
	cutOffs.Render()
}

// printValidationErrors reports broken allocation invariants, if any
func printValidationErrors(w io.Writer, errs []allocator.ValidationError) {
	if len(errs) == 0 {
		success.Fprintln(w, "\n✓ Nenhuma inconsistência encontrada")
		return
	}

	warning.Fprintf(w, "\n⚠️  %d inconsistências encontradas:\n", len(errs))
	for _, e := range errs {
		warning.Fprintf(w, "  ✗ %s\n", e.Error())
	}
}

func printRuns(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		dim.Fprintln(w, "No runs saved yet.")
		return
	}

	table := newTable(w, []string{"ID", "Created", "Source", "Candidates", "Courses", "Selected"})
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.CreatedAt,
			r.Source,
			strconv.Itoa(r.TotalProcessed),
			strconv.Itoa(r.CourseCount),
			strconv.Itoa(r.SelectedCount),
		})
	}
	table.Render()
}

func printRunView(w io.Writer, view *services.RunView) {
	heading.Fprintf(w, "\nRun %s\n", view.Run.ID)
	fmt.Fprintf(w, "Created: %s\nSource:  %s\n", view.Run.CreatedAt, view.Run.Source)
	fmt.Fprintf(w, "Candidates: %d  Dropped rows: %d  Unmatched course: %d\n",
		view.Run.TotalProcessed, view.Run.DroppedRows, view.Run.UnmatchedCourses)

	var course, list string
	var table *tablewriter.Table
	for _, e := range view.Entries {
		if e.Course != course {
			course = e.Course
			list = ""
			if table != nil {
				table.Render()
				table = nil
			}
			heading.Fprintf(w, "\n=== %s ===\n", course)
		}
		if e.List != list {
			list = e.List
			if table != nil {
				table.Render()
			}
			section.Fprintf(w, "\n%s\n", list)
			table = newTable(w, entryColumns)
		}

		var allocated string
		if e.AllocatedIn != "" {
			allocated = model.Category(e.AllocatedIn).Label()
		}
		if e.ViaReversion {
			allocated += " (REMANEJO)"
		}
		table.Append([]string{
			strconv.Itoa(e.Rank),
			e.RegistrationNumber,
			e.Name,
			model.FormatScore(e.FinalScore),
			model.FormatScore(e.Portuguese),
			model.FormatScore(e.Mathematics),
			allocated,
		})
	}
	if table != nil {
		table.Render()
	}
}
