package viz

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/vec"
)

// CrashColor tints replay entries that ended on a body other than the
// target.
var CrashColor = colorful.Color{R: 236.0 / 255, G: 30.0 / 255, B: 20.0 / 255}

// ReplayColors derives one colour per replay slot from the widget colour:
// slot i is base * exponent^i per channel, capped at 255.
func ReplayColors(base, exponent [3]float64, n int) ([]colorful.Color, error) {
	out := make([]colorful.Color, n)
	for i := range out {
		scale, err := vec.Exponentiate(exponent[:], vec.Scalar(float64(i)))
		if err != nil {
			return nil, err
		}
		rgb, err := vec.Multiply(base[:], vec.Components(scale...))
		if err != nil {
			return nil, err
		}
		rgb, err = vec.Cap(rgb, vec.Scalar(255))
		if err != nil {
			return nil, err
		}
		out[i] = colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}.Clamped()
	}
	return out, nil
}

// recordColor is the lipgloss colour for a replay entry in slot i.
func recordColor(palette []colorful.Color, i int, r replay.Record, target string) lipgloss.Color {
	if len(palette) == 0 {
		return ""
	}
	c := palette[min(i, len(palette)-1)]
	if r.Outcome != target && r.Outcome != replay.Reset {
		c = c.BlendLab(CrashColor, 0.4).Clamped()
	}
	return lipgloss.Color(c.Hex())
}
