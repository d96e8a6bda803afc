package services

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// ExportRow is one line of the CSV result export
type ExportRow struct {
	Course        string `csv:"Curso"`
	List          string `csv:"Lista"`
	Position      string `csv:"Posição"`
	Registration  string `csv:"Inscrição"`
	Name          string `csv:"Nome Completo"`
	BirthDate     string `csv:"Data Nasc."`
	FinalScore    string `csv:"Nota Final"`
	Portuguese    string `csv:"Média Port."`
	Mathematics   string `csv:"Média Mat."`
	Status        string `csv:"Situação"`
	AllocatedIn   string `csv:"Alocado em"`
	Eligibilities string `csv:"Cotas Elegíveis"`
	Warnings      string `csv:"Observações"`
}

// ExportResults writes every list of every course to a CSV file at path
func ExportResults(path string, summary *model.Summary, logger *zap.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	rows := BuildExportRows(summary)
	if err := writeExport(f, rows); err != nil {
		return err
	}

	logger.Info("Results exported", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// writeExport marshals rows into w and closes it. A failed close is an
// incomplete export, not a success.
func writeExport(w io.WriteCloser, rows []*ExportRow) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// WriteResultsCSV writes the export rows to w
func WriteResultsCSV(w io.Writer, summary *model.Summary) error {
	rows := BuildExportRows(summary)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// BuildExportRows flattens the published lists into one row per entry.
// An empty list yields a single row carrying the empty-list message.
func BuildExportRows(summary *model.Summary) []*ExportRow {
	var rows []*ExportRow
	for i := range summary.Results {
		result := &summary.Results[i]
		for _, group := range result.Groups() {
			if len(group.Entries) == 0 {
				rows = append(rows, &ExportRow{
					Course: result.Course,
					List:   group.Title,
					Name:   model.EmptyListMessage,
				})
				continue
			}

			for _, entry := range group.Entries {
				c := entry.Candidate
				rows = append(rows, &ExportRow{
					Course:        result.Course,
					List:          group.Title,
					Position:      strconv.Itoa(entry.Rank),
					Registration:  c.RegistrationNumber,
					Name:          entry.DisplayName(),
					BirthDate:     model.FormatDate(c.BirthDate),
					FinalScore:    model.FormatScore(c.Scores.Final),
					Portuguese:    model.FormatScore(c.Scores.Portuguese),
					Mathematics:   model.FormatScore(c.Scores.Mathematics),
					Status:        entry.Status.Label(),
					AllocatedIn:   entry.AllocatedLabel(),
					Eligibilities: c.EligibilityCodes(),
					Warnings:      strings.Join(c.Warnings, "; "),
				})
			}
		}
	}
	return rows
}
