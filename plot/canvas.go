package plot

// canvas is a grid of braille cells, each holding 2x4 dots.
type canvas struct {
	w, h  int // in cells
	dots  [][]rune
	owner [][]int // series that last set a dot in the cell, -1 when empty
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, dots: make([][]rune, h), owner: make([][]int, h)}
	for y := 0; y < h; y++ {
		c.dots[y] = make([]rune, w)
		c.owner[y] = make([]int, w)
		for x := range c.owner[y] {
			c.owner[y][x] = -1
		}
	}
	return c
}

func (c *canvas) dotWidth() int  { return c.w * 2 }
func (c *canvas) dotHeight() int { return c.h * 4 }

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (c *canvas) set(x, y, series int) {
	if x < 0 || y < 0 || x >= c.dotWidth() || y >= c.dotHeight() {
		return
	}
	cx, cy := x/2, y/4
	c.dots[cy][cx] |= dotBits[y%4][x%2]
	c.owner[cy][cx] = series
}

// line draws between two dot positions with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1, series int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, series)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// cell returns the glyph at a cell and the series that owns it.
func (c *canvas) cell(x, y int) (rune, int) {
	bits := c.dots[y][x]
	if bits == 0 {
		return ' ', -1
	}
	return 0x2800 + bits, c.owner[y][x]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
