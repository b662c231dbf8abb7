// Package optim searches launch space for the best shot at a level.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

var (
	ErrEmptyGrid = errors.New("optim: empty search grid")
	ErrNoMetric  = errors.New("optim: no launch reported the metric")
)

type GridSearch struct {
	speeds []float64
	angles []float64
}

// NewGridSearch searches every combination of speeds and angles (degrees).
func NewGridSearch(speeds, angles []float64) *GridSearch {
	return &GridSearch{speeds: speeds, angles: angles}
}

// Best is the winning launch and the metric value it scored.
type Best struct {
	Speed  float64
	Angle  float64
	Value  float64
	Result *sim.Result
}

// Search flies the whole grid through ens and returns the launch with the
// lowest value of metricName. Launches that reach the target win over ones
// that do not.
func (g *GridSearch) Search(ctx context.Context, ens *sim.Ensemble, cfg sim.RunConfig, metricName string) (Best, error) {
	if len(g.speeds) == 0 || len(g.angles) == 0 {
		return Best{}, ErrEmptyGrid
	}

	type point struct{ speed, angle float64 }
	points := make([]point, 0, len(g.speeds)*len(g.angles))
	launches := make([]vec.Vec2, 0, cap(points))
	for _, s := range g.speeds {
		for _, a := range g.angles {
			points = append(points, point{s, a})
			launches = append(launches, vec.FromPolar(s, a*math.Pi/180))
		}
	}

	results, err := ens.Run(ctx, launches, cfg)
	if err != nil {
		return Best{}, err
	}

	best := Best{Value: math.Inf(1)}
	bestComplete := false
	for i, r := range results {
		val, ok := r.Metrics[metricName]
		if !ok {
			continue
		}
		better := (r.Complete && !bestComplete) || (r.Complete == bestComplete && val < best.Value)
		if better {
			best = Best{Speed: points[i].speed, Angle: points[i].angle, Value: val, Result: r}
			bestComplete = r.Complete
		}
	}
	if best.Result == nil {
		return Best{}, fmt.Errorf("%w: %s", ErrNoMetric, metricName)
	}
	return best, nil
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
