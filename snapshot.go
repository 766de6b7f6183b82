package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/andareed/siftly-series/ingest"
	"github.com/andareed/siftly-series/transform"
	"github.com/andareed/siftly-series/viewport"
)

// --- Wire format ---

const sessionVersion = 1

type tabDTO struct {
	Path         string   `json:"path"`
	DateCol      string   `json:"dateCol,omitempty"`
	IndexCol     string   `json:"indexCol,omitempty"`
	DatetimeCols []string `json:"datetimeCols,omitempty"`
	Columns      []string `json:"columns"`
	Transform    string   `json:"transform"`
	ViewMin      float64  `json:"viewMin"`
	ViewMax      float64  `json:"viewMax"`
}

type sessionDTO struct {
	Version int       `json:"version"`
	ID      string    `json:"id"`
	SavedAt time.Time `json:"savedAt"`
	Active  int       `json:"active"`
	Tabs    []tabDTO  `json:"tabs"`
}

// --- Conversions ---

func toTabDTO(t *seriesTab) tabDTO {
	vp := t.ctrl.Current()
	return tabDTO{
		Path:         t.path,
		DateCol:      t.hints.DateCol,
		IndexCol:     t.hints.IndexCol,
		DatetimeCols: append([]string(nil), t.hints.DatetimeCols...),
		Columns:      append([]string(nil), t.columns...),
		Transform:    t.transform.String(),
		ViewMin:      vp.Min,
		ViewMax:      vp.Max,
	}
}

// loadSpec turns a saved tab back into what the loader needs. Relative paths
// are resolved against the session file's directory.
func (d tabDTO) loadSpec(baseDir string) loadSpec {
	path := d.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	k, ok := transform.ParseKind(d.Transform)
	if !ok {
		k = transform.Raw
	}
	spec := loadSpec{
		path: path,
		hints: ingest.Hints{
			DateCol:      d.DateCol,
			IndexCol:     d.IndexCol,
			DatetimeCols: append([]string(nil), d.DatetimeCols...),
		},
		columns:   append([]string(nil), d.Columns...),
		transform: k,
	}
	if vp := (viewport.Viewport{Min: d.ViewMin, Max: d.ViewMax}); vp.Valid() {
		spec.view = &vp
	}
	return spec
}

// --- Public API ---

// SaveSession writes the open tabs, their column and transform choices and
// their viewports to a JSON file.
func SaveSession(m *model, path string) error {
	dto := sessionDTO{
		Version: sessionVersion,
		ID:      m.sessionID,
		SavedAt: time.Now().UTC(),
		Active:  m.active,
		Tabs:    make([]tabDTO, 0, len(m.tabs)),
	}
	for _, t := range m.tabs {
		dto.Tabs = append(dto.Tabs, toTabDTO(t))
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession reads a session file written by SaveSession.
func LoadSession(path string) (sessionDTO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sessionDTO{}, err
	}
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return sessionDTO{}, fmt.Errorf("parse session %s: %w", path, err)
	}
	if dto.Version != sessionVersion {
		return sessionDTO{}, fmt.Errorf("session version %d not supported (want %d)", dto.Version, sessionVersion)
	}
	return dto, nil
}

// ExportVisible writes the rows of t's derived frame that lie inside the
// current viewport to a CSV file.
func ExportVisible(t *seriesTab, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()
	return writeRowsCSV(f, t.derived, t.visibleRows())
}

// writeRowsCSV writes the index column followed by every frame column for
// the given row positions. Timestamps are RFC 3339, NaN is empty.
func writeRowsCSV(out io.Writer, f *ingest.Frame, rows []int) error {
	w := csv.NewWriter(out)

	names := f.ColumnNames()
	indexName := f.Index.Name
	if indexName == "" {
		indexName = "row"
	}
	header := append([]string{indexName}, names...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, pos := range rows {
		if pos < 0 || pos >= f.Len() {
			return fmt.Errorf("row %d out of range", pos)
		}
		row := frameRow(f, pos, len(names))
		if err := w.Write(row.cols); err != nil {
			return fmt.Errorf("write row %d: %w", pos, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
