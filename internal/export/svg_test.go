package export

import (
	"image"
	"strings"
	"testing"

	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

func TestTrajectorySVG(t *testing.T) {
	samples := []sim.Sample{
		{Position: vec.Vec2{10, 20}},
		{Position: vec.Vec2{15.5, 25}},
		{Position: vec.Vec2{30, 40}},
	}
	bodies := []Body{{Name: "earth", Rect: image.Rect(100, 100, 180, 160), Fill: "#3399ff"}}

	svg := TrajectorySVG(samples, bodies, image.Pt(400, 300), "#e8c008")

	for _, want := range []string{
		`viewBox="0 0 400 300"`,
		`<ellipse cx="140" cy="130" rx="40.0" ry="30.0" fill="#3399ff"><title>earth</title>`,
		`d="M10.0,20.0 L15.5,25.0 L30.0,40.0"`,
		`stroke="#e8c008"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected %q in\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing tag")
	}
}

func TestTrajectorySVGWithoutPath(t *testing.T) {
	svg := TrajectorySVG([]sim.Sample{{}}, nil, image.Pt(10, 10), "red")
	if strings.Contains(svg, "<path") {
		t.Error("expected no path for a single sample")
	}
}
