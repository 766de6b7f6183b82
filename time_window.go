package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/andareed/siftly-series/ingest"
)

const timeInputLayout = "2006-01-02 15:04:05"

const (
	timeWindowFocusStart = iota
	timeWindowFocusEnd
	timeWindowFocusScrubber
)

const (
	timeWindowDrawerContentHeight = 5

	// scrubber steps as fractions of the full extent
	timeWindowStepMin     = 1.0 / 1000
	timeWindowStepDefault = 1.0 / 20
	timeWindowStepMax     = 1.0 / 2
)

type timeWindowUI struct {
	focus      int
	startInput textinput.Model
	endInput   textinput.Model
	errorMsg   string
	draftMin   float64
	draftMax   float64
	step       float64 // fraction of the extent
}

func newTimeWindowUI() timeWindowUI {
	return timeWindowUI{
		startInput: initTimeWindowInput(),
		endInput:   initTimeWindowInput(),
		step:       timeWindowStepDefault,
	}
}

func initTimeWindowInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = timeInputLayout
	ti.CharLimit = 64
	ti.Width = len(timeInputLayout) + 6
	ti.Prompt = ""
	return ti
}

// formatBound renders an x coordinate the way the inputs accept it.
func formatBound(kind ingest.IndexKind, x float64) string {
	if kind == ingest.IndexTime {
		return ingest.XToTime(x).Format(timeInputLayout)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// parseBound reads an input back into an x coordinate. Time inputs accept
// anything the ingestion timestamp parser does.
func parseBound(kind ingest.IndexKind, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if kind == ingest.IndexTime {
		ts := ingest.ParseTimestamp(s)
		if !ts.Valid {
			return 0, fmt.Errorf("%q is not a timestamp", s)
		}
		return ingest.TimeToX(ts.Time), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a row number", s)
	}
	return v, nil
}

// formatSpan renders a width in data units.
func formatSpan(kind ingest.IndexKind, span float64) string {
	if kind != ingest.IndexTime {
		return fmt.Sprintf("%.4g rows", span)
	}
	d := time.Duration(span * float64(time.Second))
	if d >= time.Second {
		return d.Round(time.Second).String()
	}
	return d.Round(time.Millisecond).String()
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
