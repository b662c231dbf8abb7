package viz

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/vec"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid covering a screen of Screen pixels. Each cell
// holds 2x4 sub-pixels and one colour, the last one drawn into it.
type Canvas struct {
	Width, Height int
	Screen        image.Point
	Grid          [][]rune
	Colors        [][]lipgloss.Color
}

func NewCanvas(w, h int, screen image.Point) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Screen: screen,
		Grid:   make([][]rune, h),
		Colors: make([][]lipgloss.Color, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]lipgloss.Color, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). The canvas is Width*2 by Height*4
// sub-pixels.
func (c *Canvas) Set(x, y int, color lipgloss.Color) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if color != "" {
		c.Colors[row][col] = color
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
		}
	}
}

// Project maps a screen pixel position to sub-pixel coordinates.
func (c *Canvas) Project(p vec.Vec2) (int, int) {
	sx := p[0] * float64(c.Width*2) / float64(c.Screen.X)
	sy := p[1] * float64(c.Height*4) / float64(c.Screen.Y)
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// unproject is the screen pixel at the centre of sub-pixel (x, y).
func (c *Canvas) unproject(x, y int) image.Point {
	px := (float64(x) + 0.5) * float64(c.Screen.X) / float64(c.Width*2)
	py := (float64(y) + 0.5) * float64(c.Screen.Y) / float64(c.Height*4)
	return image.Pt(int(px), int(py))
}

// DrawBody samples the body's mask at every sub-pixel its rect covers.
// Bodies smaller than a sub-pixel still light the one under their centre of
// mass.
func (c *Canvas) DrawBody(b *body.Body, color lipgloss.Color) {
	if !b.Visible() {
		return
	}
	r := b.Rect()
	m := b.Mask()
	x0, y0 := c.Project(vec.FromPoint(r.Min.X, r.Min.Y))
	x1, y1 := c.Project(vec.FromPoint(r.Max.X, r.Max.Y))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := c.unproject(x, y).Sub(r.Min)
			if m.Get(p.X, p.Y) {
				c.Set(x, y, color)
			}
		}
	}
	cx, cy := c.Project(b.COM())
	c.Set(cx, cy, color)
}

// DrawCircle outlines a circle given in screen pixels.
func (c *Canvas) DrawCircle(center vec.Vec2, radius float64, color lipgloss.Color) {
	steps := int(math.Max(16, radius))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := c.Project(center.Add(vec.FromPolar(radius, a)))
		c.Set(x, y, color)
	}
}

// DrawLine draws a line between two screen positions using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(from, to vec.Vec2, color lipgloss.Color) {
	x0, y0 := c.Project(from)
	x1, y1 := c.Project(to)
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the grid, styling runs of equally coloured cells together.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if color := c.Colors[i][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(color).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
