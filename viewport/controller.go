package viewport

import (
	"github.com/andareed/siftly-series/logging"
)

// Option configures a Controller.
type Option func(*Controller)

// WithZoomFactor sets the per-tick zoom factor. Values that are not greater
// than 1 are ignored.
func WithZoomFactor(f float64) Option {
	return func(c *Controller) {
		if isFinite(f) && f > 1 {
			c.factor = f
		}
	}
}

// Controller owns the viewport of one displayed series.
type Controller struct {
	factor float64
	full   Viewport
	vp     Viewport
	state  State
	anchor float64
}

// New returns an unbound controller showing [0, 1].
func New(opts ...Option) *Controller {
	c := &Controller{factor: DefaultZoomFactor}
	for _, o := range opts {
		o(c)
	}
	c.full = Viewport{Min: 0, Max: 1}
	c.vp = c.full
	return c
}

// ZoomFactor is the configured per-tick factor.
func (c *Controller) ZoomFactor() float64 { return c.factor }

// Bind resets the controller to the full data extent of a series. A zero
// width extent is widened by half a unit on each side; a non-finite one
// becomes [0, 1].
func (c *Controller) Bind(min, max float64) Viewport {
	full := Viewport{Min: min, Max: max}
	switch {
	case !isFinite(min) || !isFinite(max):
		full = Viewport{Min: 0, Max: 1}
	case max < min:
		full = Viewport{Min: max, Max: min}
	}
	if full.Min == full.Max {
		full = Viewport{Min: full.Min - 0.5, Max: full.Max + 0.5}
	}
	c.full = full
	c.vp = full
	c.state = Idle
	c.anchor = 0
	return c.vp
}

// Current returns the visible range.
func (c *Controller) Current() Viewport { return c.vp }

// Extent returns the range the controller was bound to.
func (c *Controller) Extent() Viewport { return c.full }

// State returns the drag state.
func (c *Controller) State() State { return c.state }

// OnScroll zooms around p.DataX: the share of the width left of the cursor
// is the same before and after, so the data under the cursor stays put.
func (c *Controller) OnScroll(p Pointer, dir Direction) Viewport {
	if !p.InData || !isFinite(p.DataX) {
		return c.vp
	}
	c.zoomAt(p.DataX, dir)
	return c.vp
}

// ZoomCenter zooms around the middle of the current viewport.
func (c *Controller) ZoomCenter(dir Direction) Viewport {
	c.zoomAt(c.vp.Min+c.vp.Width()/2, dir)
	return c.vp
}

func (c *Controller) zoomAt(x float64, dir Direction) {
	scale := c.factor
	if dir == Up {
		scale = 1 / c.factor
	}
	w := c.vp.Width()
	newW := w * scale
	left := x - newW*((x-c.vp.Min)/w)
	c.set(Viewport{Min: left, Max: left + newW}, "zoom")
}

// OnPress starts a drag anchored at p.PixelX. It does nothing while a drag
// is already in progress or when the press is outside the plotted area.
func (c *Controller) OnPress(p Pointer) {
	if c.state != Idle || !p.InData || !isFinite(p.PixelX) {
		return
	}
	c.state = Dragging
	c.anchor = p.PixelX
}

// OnMotion pans by the pixel distance moved since the last motion (or the
// press). It only has an effect while dragging.
func (c *Controller) OnMotion(p Pointer, widgetPixelWidth float64) Viewport {
	if c.state != Dragging || !p.InData || !isFinite(p.PixelX) {
		return c.vp
	}
	if !isFinite(widgetPixelWidth) || widgetPixelWidth <= 0 {
		return c.vp
	}
	delta := c.anchor - p.PixelX
	c.shift(delta, widgetPixelWidth)
	c.anchor = p.PixelX
	return c.vp
}

// OnRelease ends a drag.
func (c *Controller) OnRelease() {
	c.state = Idle
	c.anchor = 0
}

// PanPixels shifts the viewport as a drag of deltaPixels would, without
// touching the drag state. Positive values move the view right.
func (c *Controller) PanPixels(deltaPixels, widgetPixelWidth float64) Viewport {
	if !isFinite(deltaPixels) || !isFinite(widgetPixelWidth) || widgetPixelWidth <= 0 {
		return c.vp
	}
	c.shift(deltaPixels, widgetPixelWidth)
	return c.vp
}

func (c *Controller) shift(deltaPixels, widgetPixelWidth float64) {
	scale := c.vp.Width() / widgetPixelWidth
	d := deltaPixels * scale
	c.set(Viewport{Min: c.vp.Min + d, Max: c.vp.Max + d}, "pan")
}

// SetRange shows an explicit range. Degenerate ranges are rejected.
func (c *Controller) SetRange(min, max float64) bool {
	return c.set(Viewport{Min: min, Max: max}, "range")
}

// Reset shows the full bound extent again.
func (c *Controller) Reset() Viewport {
	c.vp = c.full
	return c.vp
}

func (c *Controller) set(next Viewport, why string) bool {
	if !next.Valid() {
		logging.Debugf("viewport: rejected %s to %s, keeping %s", why, next, c.vp)
		return false
	}
	c.vp = next
	return true
}
