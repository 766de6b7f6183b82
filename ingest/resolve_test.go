package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestResolveCandidates_KeywordScan(t *testing.T) {
	got := ResolveCandidates([]string{"date", "open", "update_time", "close"}, Hints{}, nil)

	assert.Equal(t, []string{"date", "update_time"}, names(got))
	for _, c := range got {
		assert.Equal(t, ConfidenceNameMatch, c.Confidence)
	}
}

func TestResolveCandidates_ExplicitListDominates(t *testing.T) {
	cols := []string{"date", "time", "ts_custom", "v"}

	got := ResolveCandidates(cols, Hints{DatetimeCols: []string{"TS_Custom"}}, nil)

	require.Len(t, got, 1)
	assert.Equal(t, Candidate{Name: "ts_custom", Confidence: ConfidenceExplicitHint}, got[0])
}

func TestResolveCandidates_ExplicitListKeepsOrderAndDedups(t *testing.T) {
	cols := []string{"a", "b", "c"}

	got := ResolveCandidates(cols, Hints{DatetimeCols: []string{"c", "a", "C", "missing"}}, nil)

	assert.Equal(t, []string{"c", "a"}, names(got))
}

func TestResolveCandidates_SingleColumnHints(t *testing.T) {
	cols := []string{"date", "time", "when", "stamp"}

	got := ResolveCandidates(cols, Hints{DateCol: "When"}, nil)
	assert.Equal(t, []string{"when"}, names(got))

	got = ResolveCandidates(cols, Hints{DateCol: "when", IndexCol: "stamp"}, nil)
	assert.Equal(t, []string{"stamp"}, names(got))
	assert.Equal(t, ConfidenceExplicitHint, got[0].Confidence)

	got = ResolveCandidates(cols, Hints{DateCol: "nope"}, nil)
	assert.Equal(t, []string{"date", "time"}, names(got))
}

func TestResolveCandidates_CustomKeywords(t *testing.T) {
	got := ResolveCandidates([]string{"date", "epoch", "v"}, Hints{}, []string{"epoch"})

	assert.Equal(t, []string{"epoch"}, names(got))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "date", NormalizeName("  Date "))
	assert.Equal(t, "timestamp", NormalizeName("\ufeffTimestamp"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestBuildIndex_Merge(t *testing.T) {
	cols := map[string][]string{
		"date": {"2024-01-01", "2024-01-02"},
		"time": {"10:30:00", "bogus"},
	}
	var r Report

	ix := BuildIndex([]Candidate{{Name: "date"}, {Name: "time"}}, cols, 2, &r)

	assert.Equal(t, IndexTime, ix.Kind)
	assert.Equal(t, "date time", ix.Name)
	assert.True(t, r.Merged)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), ix.At(0).Time, 0)
	// "2024-01-02 bogus" keeps its date once the stray word is dropped.
	assert.WithinDuration(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ix.At(1).Time, 0)
	assert.Equal(t, 0, r.NullTimestamps)
}

func TestBuildIndex_SingleWithNulls(t *testing.T) {
	cols := map[string][]string{"ts": {"2024-03-01T00:00:00Z", "not a date", "", "2024-03-04"}}
	var r Report

	ix := BuildIndex([]Candidate{{Name: "ts"}}, cols, 4, &r)

	assert.Equal(t, 4, ix.Len())
	assert.True(t, ix.At(0).Valid)
	assert.False(t, ix.At(1).Valid)
	assert.False(t, ix.At(2).Valid)
	assert.True(t, ix.At(3).Valid)
	assert.Equal(t, 2, r.NullTimestamps)
	assert.Equal(t, []int{2, 3}, r.NullRowSample)
	assert.Equal(t, "NaT", ix.Label(1))
	assert.Equal(t, 2, ix.NullCount())
}

func TestBuildIndex_NoCandidatesStaysOrdinal(t *testing.T) {
	var r Report

	ix := BuildIndex(nil, nil, 3, &r)

	assert.Equal(t, IndexOrdinal, ix.Kind)
	assert.Equal(t, 3, ix.Len())
	assert.Empty(t, r.Candidates)
	x, ok := ix.X(2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, x)
}

func TestParseTimestamp(t *testing.T) {
	utc := func(y int, m time.Month, d, h, min, s int) time.Time {
		return time.Date(y, m, d, h, min, s, 0, time.UTC)
	}
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T09:30:00Z", utc(2024, 1, 1, 9, 30, 0)},
		{"2024-01-01T11:30:00+02:00", utc(2024, 1, 1, 9, 30, 0)},
		{"2024-01-01 09:30", utc(2024, 1, 1, 9, 30, 0)},
		{" 2024/02/03 ", utc(2024, 2, 3, 0, 0, 0)},
		{"01/02/2024", utc(2024, 1, 2, 0, 0, 0)},
		{"January 5, 2024", utc(2024, 1, 5, 0, 0, 0)},
		{"20240105", utc(2024, 1, 5, 0, 0, 0)},
		{"2015-02-18 00:12:00 +0000 UTC", utc(2015, 2, 18, 0, 12, 0)},
		{"09:30:00", utc(1970, 1, 1, 9, 30, 0)},
		{"23:05", utc(1970, 1, 1, 23, 5, 0)},
		{"2:15 PM", utc(1970, 1, 1, 14, 15, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts := ParseTimestamp(tt.in)
			require.True(t, ts.Valid)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	for _, bad := range []string{"", "NaN", "n/a", "hello world"} {
		assert.False(t, ParseTimestamp(bad).Valid, bad)
	}
}

func TestParseFuzzyTimestamp(t *testing.T) {
	ts := ParseFuzzyTimestamp("recorded 2024-01-01 at 10:30")
	require.True(t, ts.Valid)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), ts.Time, 0)

	ts = ParseFuzzyTimestamp("2024-01-01    10:30:00")
	require.True(t, ts.Valid)
	assert.WithinDuration(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), ts.Time, 0)

	assert.False(t, ParseFuzzyTimestamp("nothing here").Valid)
}

func TestTimeXRoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 0, 500_000_000, time.UTC)

	x := TimeToX(at)

	assert.InDelta(t, 1704101400.5, x, 1e-6)
	assert.WithinDuration(t, at, XToTime(x), time.Microsecond)
}
