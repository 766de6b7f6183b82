// Package viewport keeps the visible x range of a displayed series consistent
// under cursor-anchored zoom and drag-pan gestures.
//
// A Controller is owned by exactly one displayed series and is driven from a
// single event loop; it does no locking. Every operation either produces a
// valid viewport (finite bounds, Min < Max) or leaves the previous one in
// place. Gestures delivered out of order are ignored.
package viewport

import (
	"fmt"
	"math"
)

// DefaultZoomFactor is the per-tick width multiplier for zooming out; zooming
// in uses its inverse.
const DefaultZoomFactor = 1.2

// Viewport is the data-space x range currently shown.
type Viewport struct {
	Min float64
	Max float64
}

func (v Viewport) Width() float64 { return v.Max - v.Min }

func (v Viewport) Valid() bool {
	return isFinite(v.Min) && isFinite(v.Max) && v.Min < v.Max
}

// Contains reports whether x lies in [Min, Max].
func (v Viewport) Contains(x float64) bool { return x >= v.Min && x <= v.Max }

// DataX maps a pixel offset inside a widget of the given width to data space.
func (v Viewport) DataX(pixelX, widgetWidth float64) float64 {
	if widgetWidth <= 0 {
		return v.Min
	}
	return v.Min + pixelX/widgetWidth*v.Width()
}

// PixelX maps a data-space x to a pixel offset inside a widget of the given
// width.
func (v Viewport) PixelX(dataX, widgetWidth float64) float64 {
	w := v.Width()
	if w <= 0 {
		return 0
	}
	return (dataX - v.Min) / w * widgetWidth
}

// Fraction is the share of the width lying left of x.
func (v Viewport) Fraction(x float64) float64 {
	return (x - v.Min) / v.Width()
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]", v.Min, v.Max)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Direction is the wheel direction of a scroll tick.
type Direction int

const (
	Up   Direction = iota // zoom in
	Down                  // zoom out
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Pointer is where a gesture happened: the pixel column inside the plot
// widget and, when the pointer is over the plotted area, its data-space x.
type Pointer struct {
	PixelX float64
	DataX  float64
	InData bool
}

// Outside is a pointer with no data coordinate.
var Outside = Pointer{}

// State is the drag state of a Controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}
