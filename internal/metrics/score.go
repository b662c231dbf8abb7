package metrics

import "github.com/san-kum/gravitywell/internal/sim"

// ScoreGained is the total score all bodies collected since launch.
type ScoreGained struct {
	name     string
	baseline float64
	current  float64
}

func NewScoreGained() *ScoreGained {
	return &ScoreGained{name: "score_gained"}
}

func total(w *sim.World) float64 {
	var sum float64
	for _, b := range w.Bodies() {
		sum += b.Points()
	}
	return sum
}

func (s *ScoreGained) Name() string { return s.name }

func (s *ScoreGained) Start(w *sim.World) {
	s.baseline = total(w)
	s.current = s.baseline
}

func (s *ScoreGained) Observe(w *sim.World, _ sim.Events) { s.current = total(w) }
func (s *ScoreGained) Value() float64                     { return s.current - s.baseline }

func (s *ScoreGained) Reset() {
	s.baseline = 0
	s.current = 0
}

// Default returns a fresh set of every flight metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewClosestApproach(),
		NewPeakSpeed(),
		NewPathLength(),
		NewFlightTime(),
		NewScoreGained(),
	}
}
