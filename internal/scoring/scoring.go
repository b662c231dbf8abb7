// Package scoring accumulates proximity points per body and turns threshold
// crossings into one-shot fact events.
package scoring

import (
	"math"

	"github.com/san-kum/gravitywell/internal/body"
)

type Params struct {
	PointModifier        float64
	MaxIncrementDistance float64
}

// NewParams derives the point modifier from the screen area.
func NewParams(percentModifier float64, screenW, screenH int, maxIncrementDistance float64) Params {
	return Params{
		PointModifier:        percentModifier * float64(screenW*screenH),
		MaxIncrementDistance: maxIncrementDistance,
	}
}

// Cap is the largest increment a single tick can award.
func (p Params) Cap() float64 {
	return p.PointModifier / (p.MaxIncrementDistance * p.MaxIncrementDistance)
}

// Increment is the score for one tick at distance from a body's surface.
func (p Params) Increment(distance float64) float64 {
	limit := p.Cap()
	if distance == 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return limit
	}
	inc := p.PointModifier / (distance * distance)
	if inc > limit || math.IsNaN(inc) {
		return limit
	}
	return inc
}

// Accumulate adds one tick of proximity score to every body except the
// hero. Nothing accrues while the hero is hidden.
func Accumulate(bodies []*body.Body, hero *body.Body, p Params) {
	if hero == nil || !hero.Visible() {
		return
	}
	for _, b := range bodies {
		if b == hero {
			continue
		}
		d := hero.COM().Sub(b.COM()).Len() - b.RoughRadius()
		b.AddPoints(p.Increment(d))
	}
}
