package ingest

import (
	"strings"
)

// Confidence classifies why a column became a datetime candidate.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceNameMatch
	ConfidenceExplicitHint
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExplicitHint:
		return "explicit-hint"
	case ConfidenceNameMatch:
		return "name-match"
	default:
		return "none"
	}
}

// Candidate is a column considered for the time index.
type Candidate struct {
	Name       string
	Confidence Confidence
}

// Hints are the caller's explicit choices. Names are matched after
// normalization, so case and surrounding spaces do not matter.
type Hints struct {
	DateCol      string
	IndexCol     string
	DatetimeCols []string
}

// DefaultKeywords mark a column name as datetime-like.
var DefaultKeywords = []string{"date", "time", "timestamp", "datetime"}

type keywordRule struct {
	keyword    string
	confidence Confidence
}

func rulesFor(keywords []string) []keywordRule {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	rules := make([]keywordRule, len(keywords))
	for i, k := range keywords {
		rules[i] = keywordRule{keyword: NormalizeName(k), confidence: ConfidenceNameMatch}
	}
	return rules
}

// ClassifyColumn scores a normalized column name against the keyword rule
// table; the first matching rule wins.
func ClassifyColumn(name string, keywords []string) Confidence {
	for _, r := range rulesFor(keywords) {
		if r.keyword != "" && strings.Contains(name, r.keyword) {
			return r.confidence
		}
	}
	return ConfidenceNone
}

// NormalizeName trims, strips a byte order mark and lower-cases a column name.
func NormalizeName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveCandidates selects the columns that form the time index. Explicit
// hints always dominate the keyword scan.
func ResolveCandidates(names []string, hints Hints, keywords []string) []Candidate {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var out []Candidate
	if len(hints.DatetimeCols) > 0 {
		seen := make(map[string]bool)
		for _, h := range hints.DatetimeCols {
			key := NormalizeName(h)
			if present[key] && !seen[key] {
				seen[key] = true
				out = append(out, Candidate{Name: key, Confidence: ConfidenceExplicitHint})
			}
		}
	} else {
		for _, n := range names {
			if c := ClassifyColumn(n, keywords); c != ConfidenceNone {
				out = append(out, Candidate{Name: n, Confidence: c})
			}
		}
	}

	if key := NormalizeName(hints.DateCol); key != "" && present[key] {
		out = []Candidate{{Name: key, Confidence: ConfidenceExplicitHint}}
	}
	if key := NormalizeName(hints.IndexCol); key != "" && present[key] {
		out = []Candidate{{Name: key, Confidence: ConfidenceExplicitHint}}
	}
	return out
}

// BuildIndex turns the resolved candidates into an index. columns holds the
// raw text of every column, keyed by normalized name.
func BuildIndex(candidates []Candidate, columns map[string][]string, n int, report *Report) Index {
	switch len(candidates) {
	case 0:
		return NewOrdinalIndex(n)
	case 1:
		name := candidates[0].Name
		raw := columns[name]
		stamps := make([]Timestamp, n)
		for i := 0; i < n; i++ {
			stamps[i] = ParseTimestamp(raw[i])
		}
		noteNulls(stamps, report)
		return NewTimeIndex(name, stamps)
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		stamps := make([]Timestamp, n)
		parts := make([]string, len(candidates))
		for i := 0; i < n; i++ {
			for j, name := range names {
				parts[j] = columns[name][i]
			}
			stamps[i] = ParseFuzzyTimestamp(strings.Join(parts, " "))
		}
		noteNulls(stamps, report)
		report.Merged = true
		return NewTimeIndex(strings.Join(names, " "), stamps)
	}
}

func noteNulls(stamps []Timestamp, report *Report) {
	for i, ts := range stamps {
		if ts.Valid {
			continue
		}
		report.NullTimestamps++
		if len(report.NullRowSample) < maxSampleRows {
			report.NullRowSample = append(report.NullRowSample, i+1)
		}
	}
}
