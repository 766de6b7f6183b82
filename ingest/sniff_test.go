package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"comma", "a,b,c\n1,2,3\n4,5,6\n", ','},
		{"semicolon", "Date;Open;Close\n2024-01-01;1.5;2\n", ';'},
		{"tab", "a\tb\n1\t2\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"no trailing newline", "a;b\n1;2", ';'},
		{"quoted commas ignored", "name;note\nx;\"a, b, c\"\ny;\"d, e\"\n", ';'},
		{"inconsistent falls back", "a;b\n1;2;3\n4\n", ','},
		{"single column", "value\n1\n2\n", ','},
		{"empty", "", ','},
		{"blank lines skipped", "a|b\n\n1|2\n\n", '|'},
		{"crlf", "a;b\r\n1;2\r\n", ';'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffDelimiter([]byte(tt.sample), nil))
		})
	}
}

func TestSniffDelimiter_TieGoesToEarlierCandidate(t *testing.T) {
	sample := []byte("a,b;c\n1,2;3\n")

	assert.Equal(t, ',', SniffDelimiter(sample, nil))
	assert.Equal(t, ';', SniffDelimiter(sample, []rune{';', ','}))
}

func TestSniffDelimiter_HigherCountWins(t *testing.T) {
	sample := []byte("a;b;c,d\n1;2;3,4\n")

	assert.Equal(t, ';', SniffDelimiter(sample, nil))
}

func TestSniff_TruncatedSampleDropsPartialLine(t *testing.T) {
	var b strings.Builder
	b.WriteString("a;b;c\n")
	for b.Len() < DefaultSampleBytes {
		b.WriteString("1;2;3\n")
	}
	sample := []byte(b.String())
	// Cut mid-line so the last line has a single separator.
	cut := bytes.LastIndexByte(sample[:len(sample)-1], '\n') + 3
	sample = sample[:cut]

	d, ok := sniff(sample, nil, true)
	assert.True(t, ok)
	assert.Equal(t, ';', d)

	_, ok = sniff(sample, nil, false)
	assert.False(t, ok, "a complete sample keeps its short last line")
}

func TestReadSample(t *testing.T) {
	sample, full, err := readSample(strings.NewReader("abc"), 10)
	assert.NoError(t, err)
	assert.False(t, full)
	assert.Equal(t, "abc", string(sample))

	sample, full, err = readSample(strings.NewReader("abcdef"), 4)
	assert.NoError(t, err)
	assert.True(t, full)
	assert.Equal(t, "abcd", string(sample))
}
