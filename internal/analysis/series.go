package analysis

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravitywell/internal/sim"
)

const (
	ColumnX        = "x"
	ColumnY        = "y"
	ColumnVX       = "vx"
	ColumnVY       = "vy"
	ColumnSpeed    = "speed"
	ColumnDistance = "distance"
	ColumnScore    = "score"
	ColumnTime     = "time"
)

var columns = map[string]func(sim.Sample) float64{
	ColumnX:        func(s sim.Sample) float64 { return s.Position[0] },
	ColumnY:        func(s sim.Sample) float64 { return s.Position[1] },
	ColumnVX:       func(s sim.Sample) float64 { return s.Velocity[0] },
	ColumnVY:       func(s sim.Sample) float64 { return s.Velocity[1] },
	ColumnSpeed:    func(s sim.Sample) float64 { return s.Velocity.Len() },
	ColumnDistance: func(s sim.Sample) float64 { return s.TargetDistance },
	ColumnScore:    func(s sim.Sample) float64 { return s.Score },
	ColumnTime:     func(s sim.Sample) float64 { return s.Time },
}

func Columns() []string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one column from samples.
func Series(samples []sim.Sample, column string) ([]float64, error) {
	get, ok := columns[column]
	if !ok {
		return nil, fmt.Errorf("unknown column %q, have %v", column, Columns())
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

// Crossings returns the times at which series rises through threshold,
// interpolated between samples.
func Crossings(times, series []float64, threshold float64) []float64 {
	var out []float64
	for i := 1; i < len(series) && i < len(times); i++ {
		prev, curr := series[i-1], series[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}
