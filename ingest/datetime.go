package ingest

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// structuredLayouts is tried in order by the first stage of timestamp parsing.
// Unambiguous ISO forms come first; day/month order defaults to US like the
// free-text stage does.
var structuredLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006",
	"Mon Jan _2 15:04:05 MST 2006",
	"Mon Jan _2 15:04:05 2006",
	time.RFC1123Z,
	time.RFC1123,
	"20060102T150405",
	"20060102",
}

// clockLayouts read time-of-day values. They carry no date, so the result is
// placed on clockBaseDate.
var clockLayouts = []string{
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// clockBaseDate is the day time-only values fall on.
var clockBaseDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseTimestamp is the parsing strategy for a single datetime column:
// structured layouts, then time-of-day layouts, then free-text parsing, then
// null.
func ParseTimestamp(raw string) Timestamp {
	s := strings.TrimSpace(raw)
	if isMissing(s) {
		return Timestamp{}
	}
	if t, ok := parseStructured(s); ok {
		return Timestamp{Time: t, Valid: true}
	}
	if t, ok := parseFreeText(s); ok {
		return Timestamp{Time: t, Valid: true}
	}
	return Timestamp{}
}

// ParseFuzzyTimestamp is the parsing strategy for merged candidate columns:
// structured layouts, free-text parsing, then the same two stages again on
// the text reduced to its date-like tokens, then null.
func ParseFuzzyTimestamp(raw string) Timestamp {
	s := strings.Join(strings.Fields(raw), " ")
	if ts := ParseTimestamp(s); ts.Valid {
		return ts
	}
	reduced := dateTokens(s)
	if reduced == "" || reduced == s {
		return Timestamp{}
	}
	return ParseTimestamp(reduced)
}

func parseStructured(s string) (time.Time, bool) {
	for _, layout := range structuredLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := clockBaseDate.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseFreeText(s string) (time.Time, bool) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

var calendarWords = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true, "may": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
	"january": true, "february": true, "march": true, "april": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true, "december": true,
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true,
	"saturday": true, "sunday": true,
	"am": true, "pm": true, "utc": true, "gmt": true, "z": true,
}

// dateTokens drops every word that has no digit and is not a calendar word,
// so "recorded on 2024-01-01 at 10:30" becomes "2024-01-01 10:30".
func dateTokens(s string) string {
	var keep []string
	for _, tok := range strings.Fields(s) {
		clean := strings.Trim(tok, ",;()[]")
		if clean == "" {
			continue
		}
		if strings.IndexFunc(clean, unicode.IsDigit) >= 0 || calendarWords[strings.ToLower(strings.TrimSuffix(clean, "."))] {
			keep = append(keep, clean)
		}
	}
	return strings.Join(keep, " ")
}
