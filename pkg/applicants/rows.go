package applicants

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/gocarina/gocsv"
)

// Column headers of the application form export
var (
	ColumnTimestamp    = []string{"Carimbo de data/hora"}
	ColumnName         = []string{"NOME COMPLETO"}
	ColumnRegistration = []string{"NÚMERO DE INSCRIÇÃO", "NUMERO DE INSCRICAO"}
	ColumnBirthDate    = []string{"DATA DE NASCIMENTO"}
	ColumnCourse       = []string{"OPÇÃO DE CURSO", "OPCAO DE CURSO", "OPÇAO DE CURSO"}
	ColumnMunicipality = []string{"MUNICÍPIO", "MUNICIPIO"}
	ColumnNeighborhood = []string{"BAIRRO"}
	ColumnSchool       = []string{"ESCOLA DE ORIGEM"}
	ColumnQuota        = []string{"COTA DE ESCOLHA"}
)

// Row is one applicant row indexed by normalized column header
type Row struct {
	values map[string]string
}

// NewRow indexes a raw header->value mapping for fuzzy lookups.
// When two headers normalize to the same key the first non-empty value,
// in byte order of the raw headers, wins.
func NewRow(raw map[string]string) Row {
	values := make(map[string]string, len(raw))
	for _, header := range slices.Sorted(maps.Keys(raw)) {
		value := raw[header]
		key := NormalizeKey(header)
		if existing, ok := values[key]; ok && existing != "" {
			continue
		}
		values[key] = value
	}
	return Row{values: values}
}

// Get returns the value of the first matching header, or "" if none match
func (r Row) Get(headers ...string) string {
	for _, header := range headers {
		if v, ok := r.values[NormalizeKey(header)]; ok {
			return v
		}
	}
	return ""
}

// ReadCSV reads a form export with a header row into header->value maps
func ReadCSV(in io.Reader) ([]map[string]string, error) {
	rows, err := gocsv.CSVToMaps(in)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// ReadCSVFile opens and reads a form export from disk
func ReadCSVFile(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// RowsFromValues converts a header row plus data rows (as returned by a
// spreadsheet API) into header->value maps. Short rows are padded with "".
func RowsFromValues(values [][]string) ([]map[string]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no header row found")
	}

	header := values[0]
	rows := make([]map[string]string, 0, len(values)-1)
	for _, record := range values[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
