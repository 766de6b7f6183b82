package ingest

import (
	"bytes"
	"io"
)

// DefaultSampleBytes is how much of a file the delimiter sniffer looks at.
const DefaultSampleBytes = 2048

// DefaultDelimiter is used when sniffing finds no consistent candidate.
const DefaultDelimiter = ','

// DefaultDelimiters are the candidates tried by the sniffer, in tie-break order.
var DefaultDelimiters = []rune{',', ';', '\t', '|'}

// SniffDelimiter infers the field delimiter from a sample of the file. It
// never fails: without a consistent candidate it returns DefaultDelimiter.
// A sample of DefaultSampleBytes or more is assumed to end mid-file.
func SniffDelimiter(sample []byte, candidates []rune) rune {
	d, _ := sniff(sample, candidates, len(sample) >= DefaultSampleBytes)
	return d
}

// sniff also reports whether the delimiter came from the sample.
func sniff(sample []byte, candidates []rune, truncated bool) (rune, bool) {
	if len(candidates) == 0 {
		candidates = DefaultDelimiters
	}
	lines := sampleLines(sample, truncated)
	if len(lines) == 0 {
		return DefaultDelimiter, false
	}

	best, bestCount := DefaultDelimiter, 0
	found := false
	for _, c := range candidates {
		n, ok := consistentCount(lines, c)
		if !ok {
			continue
		}
		if !found || n > bestCount {
			best, bestCount, found = c, n, true
		}
	}
	if !found {
		return DefaultDelimiter, false
	}
	return best, true
}

// sampleLines splits the sample into non-blank lines. When the sample was cut
// mid-line the partial last line is dropped, unless it is the only line.
func sampleLines(sample []byte, truncated bool) [][]byte {
	truncated = truncated && len(sample) > 0 && sample[len(sample)-1] != '\n'
	raw := bytes.Split(sample, []byte("\n"))
	var lines [][]byte
	for _, l := range raw {
		l = bytes.TrimRight(l, "\r")
		if len(bytes.TrimSpace(l)) == 0 {
			continue
		}
		lines = append(lines, l)
	}
	if truncated && len(lines) > 1 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// consistentCount returns the per-line count of c when every line has the
// same, non-zero number of unquoted occurrences.
func consistentCount(lines [][]byte, c rune) (int, bool) {
	want := -1
	for _, l := range lines {
		n := countUnquoted(l, c)
		if n == 0 {
			return 0, false
		}
		if want == -1 {
			want = n
			continue
		}
		if n != want {
			return 0, false
		}
	}
	return want, want > 0
}

func countUnquoted(line []byte, c rune) int {
	n := 0
	quoted := false
	for _, r := range string(line) {
		switch {
		case r == '"':
			quoted = !quoted
		case r == c && !quoted:
			n++
		}
	}
	return n
}

// readSample reads up to n bytes from the start of r. full is true when the
// sample filled the buffer, i.e. the file may continue past it.
func readSample(r io.Reader, n int) (sample []byte, full bool, err error) {
	if n <= 0 {
		n = DefaultSampleBytes
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return buf[:got], false, nil
	}
	return buf[:got], err == nil, err
}
