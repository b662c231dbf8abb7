// Package export renders stored flights as standalone SVG images.
package export

import (
	"fmt"
	"image"
	"strings"

	"github.com/san-kum/gravitywell/internal/sim"
)

// Body is a body at its starting position, drawn as the ellipse inscribed
// in Rect.
type Body struct {
	Name string
	Rect image.Rectangle
	Fill string
}

// TrajectorySVG draws the bodies and the hero's path on a screen-sized
// canvas. Coordinates are screen pixels with y pointing down, as recorded.
func TrajectorySVG(samples []sim.Sample, bodies []Body, screen image.Point, strokeColor string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, screen.X, screen.Y, screen.X, screen.Y))

	for _, b := range bodies {
		c := b.Rect.Min.Add(b.Rect.Max).Div(2)
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%d" cy="%d" rx="%.1f" ry="%.1f" fill="%s"><title>%s</title></ellipse>
`, c.X, c.Y, float64(b.Rect.Dx())/2, float64(b.Rect.Dy())/2, b.Fill, b.Name))
	}

	if len(samples) > 1 {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
		for i, s := range samples {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", s.Position[0], s.Position[1]))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", s.Position[0], s.Position[1]))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
