package sim_test

import (
	"image"
	"image/color"
	"time"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

const tick = time.Second / 30

func disc(d int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			if dx*dx+dy*dy <= r*r {
				img.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return img
}

func square(n int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetAlpha(x, y, color.Alpha{A: 255})
		}
	}
	return img
}

type fixture struct {
	blocker bool
	// heroSize overrides the rocket's side length, 8 by default.
	heroSize int
}

// build lays out earth on the left, moon on the right and the rocket parked
// on earth. With blocker set an asteroid sits between earth and moon.
func (f fixture) build(clock sim.Clock) (*sim.World, error) {
	w, err := sim.NewWorld(sim.DefaultParams(), sim.WithClock(clock), sim.WithLevel(1))
	if err != nil {
		return nil, err
	}
	size := f.heroSize
	if size == 0 {
		size = 8
	}
	specs := []body.Spec{
		{Name: "rocket", Shape: square(size), Position: image.Pt(335, 335), Mass: 1, Particle: true, Velocity: vec.Vec2{0, -18}},
		{Name: "earth", Shape: disc(80), Position: image.Pt(300, 344), Mass: 1000, PointLevels: []float64{50, 500}},
		{Name: "moon", Shape: disc(40), Position: image.Pt(800, 364), Mass: 100, PointLevels: []float64{20}},
	}
	if f.blocker {
		specs = append(specs, body.Spec{Name: "asteroid", Shape: disc(40), Position: image.Pt(560, 364), Mass: 50})
	}
	for _, s := range specs {
		if err := w.CreateBody(s); err != nil {
			return nil, err
		}
	}
	if err := w.SetHero("rocket"); err != nil {
		return nil, err
	}
	if err := w.SetTarget("moon"); err != nil {
		return nil, err
	}
	if err := w.SetHome("earth"); err != nil {
		return nil, err
	}
	return w, nil
}

func (f fixture) factory() sim.Factory {
	return func(clock *sim.ManualClock) (*sim.World, error) { return f.build(clock) }
}
