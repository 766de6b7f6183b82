// Package ingest converts delimited text files of unknown layout into a
// datetime-indexed, numerically typed Frame.
//
// Only file access and structurally empty input are errors. Everything else
// (an unknown delimiter, unparseable timestamps, mixed-type columns, ragged
// rows) degrades to a documented fallback and is recorded in Frame.Report.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/andareed/siftly-series/logging"
)

// ctxCheckInterval is how often, in rows, parsing checks for cancellation.
const ctxCheckInterval = 4096

// Options are the caller's hints plus sniffing and classification tuning.
// Zero tuning values select the package defaults.
type Options struct {
	Hints

	SampleBytes int
	Delimiters  []rune
	Keywords    []string
}

// Ingest reads path and returns its Frame. It fails only when the file cannot
// be read (ErrNotFound) or holds no data rows (ErrEmpty).
func Ingest(ctx context.Context, path string, opts Options) (*Frame, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, notFound(path, fmt.Errorf("not a regular file"))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	defer f.Close()

	sample, full, err := readSample(f, opts.SampleBytes)
	if err != nil {
		return nil, notFound(path, err)
	}
	delim, sniffed := sniff(sample, opts.Delimiters, full)
	logging.Debugf("ingest: %s delimiter=%q sniffed=%v", path, delim, sniffed)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, notFound(path, err)
	}

	frame, err := Read(ctx, f, delim, opts.Hints, opts.Keywords)
	if err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			ie.Path = path
		}
		return nil, err
	}
	frame.Source = path
	frame.Report.DelimiterSniffed = sniffed

	r := frame.Report
	logging.Infof("ingest: %s rows=%d columns=%d index=%s nulls=%d", path, r.Rows, len(frame.columns), frame.Index.Kind, r.NullTimestamps)
	if r.Degraded() {
		logging.Warnf("ingest: %s degraded: %d unparsed timestamps, %d short rows, %d long rows", path, r.NullTimestamps, r.PaddedRows, r.TruncatedRows)
	}
	return frame, nil
}

// Read parses already-opened delimited text with a known delimiter. It runs
// the same resolution and coercion as Ingest.
func Read(ctx context.Context, r io.Reader, delim rune, hints Hints, keywords []string) (*Frame, error) {
	report := Report{Delimiter: delim}

	header, records, err := readRecords(ctx, r, delim, &report)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 || len(records) == 0 {
		return nil, empty("")
	}

	names := normalizeHeader(header)
	n := len(records)
	report.Rows = n

	raw := make(map[string][]string, len(names))
	for j, name := range names {
		col := make([]string, n)
		for i, rec := range records {
			col[i] = rec[j]
		}
		raw[name] = col
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest cancelled: %w", err)
	}

	candidates := ResolveCandidates(names, hints, keywords)
	consumed := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		consumed[c.Name] = true
		report.Candidates = append(report.Candidates, c.Name)
		report.Confidence = c.Confidence
	}
	index := BuildIndex(candidates, raw, n, &report)

	var dataNames []string
	for _, name := range names {
		if !consumed[name] {
			dataNames = append(dataNames, name)
		}
	}
	cols, outcomes := CoerceColumns(dataNames, raw)
	report.Coercions = outcomes

	return NewFrame("", index, cols, report)
}

func readRecords(ctx context.Context, r io.Reader, delim rune, report *Report) ([]string, [][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	width := len(header)
	var records [][]string
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed quoting or similar: keep what was read so far.
			logging.Warnf("ingest: stopping at data row %d: %v", line, err)
			break
		}
		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, fmt.Errorf("ingest cancelled: %w", err)
			}
		}
		if isBlankRecord(rec) {
			continue
		}
		switch {
		case len(rec) < width:
			report.PaddedRows++
			rec = append(rec, make([]string, width-len(rec))...)
		case len(rec) > width:
			report.TruncatedRows++
			rec = rec[:width]
		}
		records = append(records, rec)
	}
	return header, records, nil
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if v != "" {
			return false
		}
	}
	return true
}

// normalizeHeader lower-cases and trims every name, names empty headers and
// makes duplicates unique.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int, len(header))
	for i, h := range header {
		base := NormalizeName(h)
		if base == "" {
			base = fmt.Sprintf("unnamed: %d", i)
		}
		name := base
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
