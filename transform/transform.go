// Package transform derives new frames from ingested ones. Inputs are never
// modified.
package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/andareed/siftly-series/ingest"
)

// Kind selects a transform.
type Kind int

const (
	Raw Kind = iota
	RollingMeanKind
	DiffKind
)

var kindNames = []string{"Raw", "Rolling Mean", "Differencing"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every transform in menu order.
func Kinds() []Kind { return []Kind{Raw, RollingMeanKind, DiffKind} }

// ParseKind maps a name written by Kind.String back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return Raw, false
}

// Apply runs k over the named numeric columns.
func Apply(f *ingest.Frame, cols []string, k Kind, window int) (*ingest.Frame, error) {
	switch k {
	case Raw:
		return f.WithColumns(cols...), nil
	case RollingMeanKind:
		return RollingMean(f, cols, window)
	case DiffKind:
		return Diff(f, cols)
	}
	return nil, fmt.Errorf("unknown transform %v", k)
}

func numericColumns(f *ingest.Frame, cols []string) ([]string, []ingest.Numeric, error) {
	names := make([]string, 0, len(cols))
	values := make([]ingest.Numeric, 0, len(cols))
	for _, c := range cols {
		v, ok := f.Numeric(c)
		if !ok {
			return nil, nil, fmt.Errorf("column %q is not numeric", c)
		}
		names = append(names, ingest.NormalizeName(c))
		values = append(values, v)
	}
	return names, values, nil
}

// RollingMean replaces each selected column with the mean of a trailing
// window. The first window-1 rows, and any window holding a missing value,
// are NaN. Other columns are dropped.
func RollingMean(f *ingest.Frame, cols []string, window int) (*ingest.Frame, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}
	names, values, err := numericColumns(f, cols)
	if err != nil {
		return nil, err
	}

	out := make([]ingest.Column, len(names))
	for j, v := range values {
		out[j] = ingest.Column{Name: names[j], Values: rollingMean(v, window)}
	}
	return f.Derive(f.Index, out)
}

func rollingMean(v ingest.Numeric, window int) ingest.Numeric {
	res := make(ingest.Numeric, len(v))
	sum := 0.0
	missing := 0
	for i, x := range v {
		if math.IsNaN(x) {
			missing++
		} else {
			sum += x
		}
		if i >= window {
			old := v[i-window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		if i < window-1 || missing > 0 {
			res[i] = math.NaN()
			continue
		}
		res[i] = sum / float64(window)
	}
	return res
}

// Diff takes the first difference of each selected column and drops every
// row where any of them is NaN, including the first row.
func Diff(f *ingest.Frame, cols []string) (*ingest.Frame, error) {
	names, values, err := numericColumns(f, cols)
	if err != nil {
		return nil, err
	}

	diffs := make([]ingest.Numeric, len(values))
	for j, v := range values {
		d := make(ingest.Numeric, len(v))
		for i := range v {
			if i == 0 {
				d[i] = math.NaN()
				continue
			}
			d[i] = v[i] - v[i-1]
		}
		diffs[j] = d
	}

	var keep []int
	for i := 0; i < f.Len(); i++ {
		ok := true
		for _, d := range diffs {
			if math.IsNaN(d[i]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, i)
		}
	}

	out := make([]ingest.Column, len(names))
	for j, d := range diffs {
		kept := make(ingest.Numeric, len(keep))
		for k, i := range keep {
			kept[k] = d[i]
		}
		out[j] = ingest.Column{Name: names[j], Values: kept}
	}
	sub := f.Rows(keep)
	return sub.Derive(sub.Index, out)
}

// Summary is the descriptive statistics of one column.
type Summary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe summarises the named numeric columns, ignoring missing values.
// Statistics of a column without values are NaN; Std needs two values.
func Describe(f *ingest.Frame, cols []string) ([]Summary, error) {
	names, values, err := numericColumns(f, cols)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(names))
	for j, v := range values {
		out[j] = describe(names[j], v)
	}
	return out, nil
}

func describe(name string, v ingest.Numeric) Summary {
	nan := math.NaN()
	s := Summary{Column: name, Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}

	xs := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			xs = append(xs, x)
		}
	}
	s.Count = len(xs)
	if s.Count == 0 {
		return s
	}
	sort.Float64s(xs)

	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	s.Mean = sum / float64(s.Count)
	if s.Count > 1 {
		ss := 0.0
		for _, x := range xs {
			ss += (x - s.Mean) * (x - s.Mean)
		}
		s.Std = math.Sqrt(ss / float64(s.Count-1))
	}
	s.Min = xs[0]
	s.Max = xs[len(xs)-1]
	s.Q25 = quantile(xs, 0.25)
	s.Median = quantile(xs, 0.5)
	s.Q75 = quantile(xs, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted xs.
func quantile(xs []float64, q float64) float64 {
	pos := q * float64(len(xs)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return xs[lo]
	}
	return xs[lo] + (xs[hi]-xs[lo])*(pos-float64(lo))
}
