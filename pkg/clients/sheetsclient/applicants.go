package sheetsclient

import (
	"fmt"

	"github.com/jakechorley/eeep-admissions/pkg/applicants"
)

// ListApplicantRows reads the form responses tab and returns one header->value map per applicant
func (c *Client) ListApplicantRows(spreadsheetID, tab string) ([]map[string]string, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get applicant data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	rows, err := applicants.RowsFromValues(stringValues(values))
	if err != nil {
		return nil, fmt.Errorf("failed to read applicant rows: %w", err)
	}

	return rows, nil
}

// stringValues converts the API's cell values to text. Empty cells become "".
func stringValues(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case nil:
				out[i][j] = ""
			case string:
				out[i][j] = v
			default:
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}
