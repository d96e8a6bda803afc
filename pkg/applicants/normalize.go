package applicants

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText strips accents, upper-cases and trims the text.
// "Região da Escola " becomes "REGIAO DA ESCOLA".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	return strings.ToUpper(strings.TrimSpace(folded))
}

// NormalizeKey reduces a column header to its accent-free alphanumeric core,
// so that "NÚMERO DE INSCRIÇÃO" and "Numero de inscricao" match.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range NormalizeText(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
