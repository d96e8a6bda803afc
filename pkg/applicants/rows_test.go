package applicants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "REGIAO DA ESCOLA", NormalizeText(" Região da Escola "))
	assert.Equal(t, "INFORMATICA", NormalizeText("informática"))
	assert.Equal(t, "", NormalizeText(""))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey("NÚMERO DE INSCRIÇÃO"), NormalizeKey("Numero de inscricao"))
	assert.Equal(t, "DATADENASCIMENTO", NormalizeKey("Data de Nascimento:"))
}

func TestRow_GetMatchesHeadersLoosely(t *testing.T) {
	row := NewRow(map[string]string{
		"numero de inscricao ": "42",
		"Opção de curso":       "Redes",
	})

	assert.Equal(t, "42", row.Get(ColumnRegistration...))
	assert.Equal(t, "Redes", row.Get(ColumnCourse...))
	assert.Equal(t, "", row.Get(ColumnQuota...))
}

func TestNewRow_CollidingHeadersResolveDeterministically(t *testing.T) {
	raw := map[string]string{
		"NÚMERO DE INSCRIÇÃO": "111",
		"NUMERO DE INSCRICAO": "222",
	}

	for range 200 {
		assert.Equal(t, "222", NewRow(raw).Get(ColumnRegistration...))
	}
}

func TestNewRow_CollidingHeadersSkipEmptyValues(t *testing.T) {
	raw := map[string]string{
		"NUMERO DE INSCRICAO": "",
		"NÚMERO DE INSCRIÇÃO": "111",
	}

	for range 50 {
		assert.Equal(t, "111", NewRow(raw).Get(ColumnRegistration...))
	}
}

func TestReadCSV(t *testing.T) {
	in := strings.NewReader("NOME COMPLETO,NÚMERO DE INSCRIÇÃO,PORTUGUÊS - 6º ANO\n" +
		"Ana,1,\"8,5\"\n" +
		"Bia,2,9\n")

	rows, err := ReadCSV(in)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana", rows[0]["NOME COMPLETO"])
	assert.Equal(t, "8,5", rows[0]["PORTUGUÊS - 6º ANO"])
	assert.Equal(t, "2", rows[1]["NÚMERO DE INSCRIÇÃO"])
}

func TestRowsFromValues(t *testing.T) {
	rows, err := RowsFromValues([][]string{
		{"NOME COMPLETO", "BAIRRO"},
		{"Ana", "Centro"},
		{"Bia"},
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Centro", rows[0]["BAIRRO"])
	assert.Equal(t, "", rows[1]["BAIRRO"])

	_, err = RowsFromValues(nil)
	assert.Error(t, err)
}
