package plot

import (
	"strings"

	"github.com/andareed/siftly-series/ingest"
)

// Kind is the broad shape of a dataset, inferred from its column names.
type Kind int

const (
	Generic Kind = iota
	Financial
	Sensor
	Anomaly
	Forecast
)

type kindRule struct {
	kind     Kind
	title    string
	requires []string // exact names, all must be present
	contains []string // substrings, one column must contain one of them
	primary  []string // default columns, first present wins
}

// kindRules is checked in order; the first matching rule wins.
var kindRules = []kindRule{
	{kind: Financial, title: "Price", requires: []string{"open", "high", "low", "close"}, primary: []string{"close"}},
	{kind: Sensor, title: "Sensor Data", contains: []string{"temp", "pressure"}, primary: []string{"temp", "temperature", "pressure"}},
	{kind: Anomaly, title: "Anomaly Detection", contains: []string{"anomaly", "label"}, primary: []string{"value"}},
	{kind: Forecast, title: "Forecast", contains: []string{"yhat"}, primary: []string{"yhat"}},
}

// InferKind classifies a dataset by its (normalized) column names.
func InferKind(columns []string) Kind {
	r, ok := matchRule(columns)
	if !ok {
		return Generic
	}
	return r.kind
}

func matchRule(columns []string) (kindRule, bool) {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[ingest.NormalizeName(c)] = true
	}
	for _, r := range kindRules {
		if len(r.requires) > 0 && containsAll(have, r.requires) {
			return r, true
		}
		if len(r.contains) > 0 && containsSubstring(have, r.contains) {
			return r, true
		}
	}
	return kindRule{}, false
}

func (k Kind) Title() string {
	for _, r := range kindRules {
		if r.kind == k {
			return r.title
		}
	}
	return "Generic Data"
}

func (k Kind) String() string {
	switch k {
	case Financial:
		return "financial"
	case Sensor:
		return "sensor"
	case Anomaly:
		return "anomaly"
	case Forecast:
		return "forecast"
	default:
		return "generic"
	}
}

// DefaultColumns picks the columns to show first: the kind's primary column
// when present, else the first numeric column.
func DefaultColumns(f *ingest.Frame) []string {
	numeric := f.NumericColumnNames()
	if len(numeric) == 0 {
		return nil
	}
	if r, ok := matchRule(f.ColumnNames()); ok {
		for _, p := range r.primary {
			for _, n := range numeric {
				if n == p {
					return []string{n}
				}
			}
		}
	}
	return numeric[:1]
}

func containsAll(have map[string]bool, names []string) bool {
	for _, n := range names {
		if !have[n] {
			return false
		}
	}
	return true
}

func containsSubstring(have map[string]bool, terms []string) bool {
	for c := range have {
		for _, t := range terms {
			if strings.Contains(c, t) {
				return true
			}
		}
	}
	return false
}
