// Package collision finds pixel-accurate contacts between bodies and cheap
// bounding-box overlaps used as a redraw hint.
package collision

import (
	"image"

	"github.com/san-kum/gravitywell/internal/body"
)

// Pair is an unordered body pair, stored in enumeration order.
type Pair struct {
	A, B string
}

func (p Pair) Has(name string) bool { return p.A == name || p.B == name }

// Other returns the member of p that is not name.
func (p Pair) Other(name string) string {
	if p.A == name {
		return p.B
	}
	return p.A
}

// Area is the number of solid pixels shared by a and b at their current
// positions.
func Area(a, b *body.Body) int {
	offset := b.Rect().Min.Sub(a.Rect().Min)
	return a.Mask().OverlapArea(b.Mask(), offset)
}

// Real reports whether an overlap counts for gameplay.
func Real(a, b *body.Body, area int) bool {
	return area > 0 && (a.Particle() || b.Particle()) && a.Visible() && b.Visible()
}

// CheckAll reports every real collision among bodies, each unordered pair
// once, in the order the slice gives.
func CheckAll(bodies []*body.Body) map[Pair]int {
	hits := make(map[Pair]int)
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !a.Visible() || !b.Visible() || !(a.Particle() || b.Particle()) {
				continue
			}
			if !a.Rect().Overlaps(b.Rect()) {
				continue
			}
			if area := Area(a, b); Real(a, b, area) {
				hits[Pair{A: a.Name(), B: b.Name()}] = area
			}
		}
	}
	return hits
}

// Involving returns the pairs containing name, in enumeration order of the
// bodies slice.
func Involving(hits map[Pair]int, bodies []*body.Body, name string) []Pair {
	var out []Pair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			p := Pair{A: bodies[i].Name(), B: bodies[j].Name()}
			if _, ok := hits[p]; ok && p.Has(name) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Overlapping is true when two visible bodies' rects intersect or any body's
// rect intersects a widget rect.
func Overlapping(bodies []*body.Body, widgets []image.Rectangle) bool {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Visible() && bodies[j].Visible() && bodies[i].Rect().Overlaps(bodies[j].Rect()) {
				return true
			}
		}
	}
	for _, b := range bodies {
		for _, w := range widgets {
			if b.Rect().Overlaps(w) {
				return true
			}
		}
	}
	return false
}
