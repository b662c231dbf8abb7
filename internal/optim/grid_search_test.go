package optim

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/gravitywell/internal/body"
	"github.com/san-kum/gravitywell/internal/metrics"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

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

// earthMoon parks the rocket on earth with the moon due east.
func earthMoon(clock *sim.ManualClock) (*sim.World, error) {
	w, err := sim.NewWorld(sim.DefaultParams(), sim.WithClock(clock))
	if err != nil {
		return nil, err
	}
	for _, s := range []body.Spec{
		{Name: "rocket", Shape: square(8), Position: image.Pt(335, 335), Mass: 1, Particle: true, Velocity: vec.Vec2{0, -18}},
		{Name: "earth", Shape: disc(80), Position: image.Pt(300, 344), Mass: 1000},
		{Name: "moon", Shape: disc(40), Position: image.Pt(800, 364), Mass: 100},
	} {
		if err := w.CreateBody(s); err != nil {
			return nil, err
		}
	}
	for _, set := range []func() error{
		func() error { return w.SetHero("rocket") },
		func() error { return w.SetTarget("moon") },
		func() error { return w.SetHome("earth") },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func TestSearchPrefersReachingTarget(t *testing.T) {
	ens := sim.NewEnsemble(earthMoon, metrics.Default)
	g := NewGridSearch([]float64{20}, []float64{-90, 0})

	best, err := g.Search(context.Background(), ens, sim.RunConfig{MaxTicks: 100}, "closest_approach")
	if err != nil {
		t.Fatal(err)
	}
	if best.Angle != 0 || best.Speed != 20 {
		t.Errorf("expected the eastward launch, got speed %v angle %v", best.Speed, best.Angle)
	}
	if !best.Result.Complete || best.Value != 0 {
		t.Errorf("expected a completed run with zero approach, got %+v", best)
	}
}

func TestSearchErrors(t *testing.T) {
	ens := sim.NewEnsemble(earthMoon, metrics.Default)
	cfg := sim.RunConfig{MaxTicks: 5}

	if _, err := NewGridSearch(nil, []float64{0}).Search(context.Background(), ens, cfg, "peak_speed"); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	if _, err := NewGridSearch([]float64{20}, []float64{0}).Search(context.Background(), ens, cfg, "nope"); !errors.Is(err, ErrNoMetric) {
		t.Errorf("expected ErrNoMetric, got %v", err)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{0, 10, 3, []float64{0, 5, 10}},
		{12, 24, 1, []float64{12}},
		{0, 1, 0, nil},
	}
	for _, tt := range tests {
		got := Range(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Range(%v, %v, %d): expected %v, got %v", tt.lo, tt.hi, tt.n, tt.want, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Range(%v, %v, %d)[%d]: expected %v, got %v", tt.lo, tt.hi, tt.n, i, tt.want[i], got[i])
			}
		}
	}
}
