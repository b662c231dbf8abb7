package analysis

import (
	"strings"

	"github.com/san-kum/gravitywell/internal/sim"
)

type Point struct{ X, Y float64 }

// Portrait holds one column of a trajectory plotted against another.
type Portrait struct {
	XColumn, YColumn string
	Points           []Point
}

func NewPortrait(samples []sim.Sample, xColumn, yColumn string) (*Portrait, error) {
	xs, err := Series(samples, xColumn)
	if err != nil {
		return nil, err
	}
	ys, err := Series(samples, yColumn)
	if err != nil {
		return nil, err
	}
	p := &Portrait{XColumn: xColumn, YColumn: yColumn, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// ASCII renders the portrait into a width x height character grid. Screen
// columns flip y so that up on the plot is up on the screen.
func (p *Portrait) ASCII(width, height int, flipY bool) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := int((pt.Y - minY) / rangeY * float64(height-1))
		if !flipY {
			row = height - 1 - row
		}
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		switch {
		case i == 0:
			canvas[row][col] = 'o'
		case i == len(p.Points)-1:
			canvas[row][col] = 'x'
		case canvas[row][col] == ' ':
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
