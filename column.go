package main

import "github.com/andareed/siftly-series/ingest"

type ColumnRole int

const (
	RoleNormal ColumnRole = iota
	RoleIndex             // the row key
	RoleText
)

type ColumnMeta struct {
	Name     string
	Role     ColumnRole
	MinWidth int
	Weight   float64
	Width    int
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RoleIndex:
		return 24
	case RoleText:
		return 12
	default:
		return 10
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RoleIndex:
		return 2.0
	case RoleText:
		return 1.5
	default:
		return 1.0
	}
}

// tableColumns lists the index followed by the frame's columns.
func tableColumns(f *ingest.Frame) []ColumnMeta {
	name := f.Index.Name
	if name == "" {
		name = "row"
	}
	cols := []ColumnMeta{newColumnMeta(name, RoleIndex)}
	for _, c := range f.Columns() {
		role := RoleNormal
		if !c.IsNumeric() {
			role = RoleText
		}
		cols = append(cols, newColumnMeta(c.Name, role))
	}
	return cols
}

func newColumnMeta(name string, role ColumnRole) ColumnMeta {
	return ColumnMeta{
		Name:     name,
		Role:     role,
		MinWidth: defaultMinWidthForRole(role),
		Weight:   defaultWeightForRole(role),
	}
}

// layoutColumns gives every column its minimum width and shares what is left
// of totalWidth by weight.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		for i := range cols {
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
