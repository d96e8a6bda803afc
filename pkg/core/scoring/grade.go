package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxGrade is the top of the normalized grade scale
const MaxGrade = 10.0

// maxPercentGrade is the top of the 0-100 scale some schools report in
const maxPercentGrade = 100.0

// Grade is a single normalized grade value
type Grade struct {
	Value float64

	// Blank grades are excluded from every average
	Blank bool

	// Warning is set when the raw value had to be rescaled or ignored
	Warning string
}

// ParseGrade normalizes a raw grade cell into the 0-10 scale.
//
// Rules:
//   - blank or unparsable text is a blank grade (no warning), including NaN and Inf
//   - values in (10, 100] are assumed to be on a 0-100 scale and divided by 10
//   - values above 100 or below 0 are ignored with a warning
//   - values in [0, 10] are used as-is
//
// Comma decimal separators and surrounding quotes are accepted.
func ParseGrade(raw string) Grade {
	clean := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	clean = strings.Replace(clean, ",", ".", 1)
	if clean == "" {
		return Grade{Blank: true}
	}

	num, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return Grade{Blank: true}
	}

	switch {
	case num > maxPercentGrade:
		return Grade{
			Blank:   true,
			Warning: fmt.Sprintf("Nota %s ignorada (>100)", formatNumber(num)),
		}
	case num < 0:
		return Grade{
			Blank:   true,
			Warning: fmt.Sprintf("Nota %s ignorada (negativa)", formatNumber(num)),
		}
	case num > MaxGrade:
		scaled := num / 10
		return Grade{
			Value:   scaled,
			Warning: fmt.Sprintf("Nota %s ajustada para %s", formatNumber(num), formatNumber(scaled)),
		}
	}

	return Grade{Value: num}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
