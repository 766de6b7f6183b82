package ingest

import (
	"math"
	"strconv"
	"strings"
)

var missingTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"nat":  true,
	"-nan": true,
	"#n/a": true,
}

func isMissing(s string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(s))]
}

// Coerce reinterprets a text column as numbers. It is all or nothing: a
// single value that is neither missing nor a number keeps the whole column as
// its original text. A column with no numbers at all stays text.
func Coerce(values Text) ColumnValue {
	v, _ := coerce("", values)
	return v
}

func coerce(name string, values Text) (ColumnValue, Coercion) {
	out := make(Numeric, len(values))
	result := Coercion{Column: name}
	seen := false
	for i, raw := range values {
		s := strings.TrimSpace(raw)
		if isMissing(s) {
			out[i] = math.NaN()
			result.Missing++
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return append(Text(nil), values...), Coercion{Column: name, Rejected: raw, RowNum: i + 1}
		}
		out[i] = f
		seen = true
	}
	if !seen {
		return append(Text(nil), values...), Coercion{Column: name}
	}
	result.Numeric = true
	return out, result
}

// CoerceColumns coerces every column independently.
func CoerceColumns(names []string, raw map[string][]string) ([]Column, []Coercion) {
	cols := make([]Column, 0, len(names))
	outcomes := make([]Coercion, 0, len(names))
	for _, name := range names {
		v, c := coerce(name, raw[name])
		cols = append(cols, Column{Name: name, Values: v})
		outcomes = append(outcomes, c)
	}
	return cols, outcomes
}

// FormatFloat renders a numeric cell; NaN renders empty.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
