package sheetsclient

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// maxTabTitleLength is the longest tab title the Sheets API accepts
const maxTabTitleLength = 100

// resultColumns is the header row written above every list
var resultColumns = []interface{}{
	"Posição",
	"Inscrição",
	"Nome Completo",
	"Data Nasc.",
	"Nota Final",
	"Média Port.",
	"Média Mat.",
	"Situação",
	"Alocado em",
	"Cotas Elegíveis",
	"Observações",
}

// PublishResults writes one tab per course into the result spreadsheet.
// Existing tabs with the same title are cleared and overwritten; other tabs are left untouched.
func (c *Client) PublishResults(spreadsheetID string, summary *model.Summary) error {
	existing, err := c.SheetTitles(spreadsheetID)
	if err != nil {
		return err
	}

	for i := range summary.Results {
		result := &summary.Results[i]
		title := TabTitle(result.Course)

		if slices.Contains(existing, title) {
			if err := c.ClearValues(spreadsheetID, title); err != nil {
				return fmt.Errorf("failed to clear tab %q: %w", title, err)
			}
		} else {
			if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
				return fmt.Errorf("failed to create tab %q: %w", title, err)
			}
			existing = append(existing, title)
		}

		rows := BuildCourseRows(result)
		if err := c.UpdateValues(spreadsheetID, fmt.Sprintf("'%s'!A1", title), rows); err != nil {
			return fmt.Errorf("failed to write tab %q: %w", title, err)
		}

		c.logger.Info("Published course results",
			zap.String("course", result.Course),
			zap.String("tab", title),
			zap.Int("rows", len(rows)))
	}

	return nil
}

// TabTitle derives a valid tab title from a course name
func TabTitle(course string) string {
	title := strings.TrimSpace(strings.ReplaceAll(course, "/", "-"))
	title = strings.ReplaceAll(title, "'", "")
	if title == "" {
		title = "SEM CURSO"
	}
	if runes := []rune(title); len(runes) > maxTabTitleLength {
		title = string(runes[:maxTabTitleLength])
	}
	return title
}

// BuildCourseRows lays out every list of a course as sheet rows: a title row per
// list, the column header, one row per entry and a note under quota lists
func BuildCourseRows(result *model.CourseResult) [][]interface{} {
	rows := [][]interface{}{
		{"CURSO: " + result.Course},
		{fmt.Sprintf("Vagas: %d", result.Capacity.Total())},
	}

	for _, group := range result.Groups() {
		rows = append(rows,
			[]interface{}{},
			[]interface{}{">>> " + strings.ToUpper(group.Title)},
			resultColumns,
		)

		if len(group.Entries) == 0 {
			rows = append(rows, []interface{}{"", "", model.EmptyListMessage})
			continue
		}

		for _, entry := range group.Entries {
			rows = append(rows, entryRow(entry))
		}

		if group.IsQuotaList() {
			rows = append(rows, []interface{}{"", "", model.QuotaListNote})
		}
	}

	return rows
}

func entryRow(entry model.Entry) []interface{} {
	c := entry.Candidate
	return []interface{}{
		entry.Rank,
		c.RegistrationNumber,
		entry.DisplayName(),
		model.FormatDate(c.BirthDate),
		model.FormatScore(c.Scores.Final),
		model.FormatScore(c.Scores.Portuguese),
		model.FormatScore(c.Scores.Mathematics),
		entry.Status.Label(),
		entry.AllocatedLabel(),
		c.EligibilityCodes(),
		strings.Join(c.Warnings, "; "),
	}
}
