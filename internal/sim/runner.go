package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/gravitywell/internal/replay"
	"github.com/san-kum/gravitywell/internal/scoring"
	"github.com/san-kum/gravitywell/internal/vec"
)

const OutcomeTimeout = "timeout"

type RunConfig struct {
	Launch   vec.Vec2
	MaxTicks int
	Gravity  float64
}

type Sample struct {
	Tick           int
	Time           float64
	Position       vec.Vec2
	Velocity       vec.Vec2
	TargetDistance float64
	Score          float64
}

type Result struct {
	Samples    []Sample
	Facts      []scoring.FactKey
	Metrics    map[string]float64
	Outcome    string
	Elapsed    time.Duration
	StepsTaken int
	Complete   bool
}

// Runner flies a single launch headlessly, stepping a manual clock by one
// tick period per tick.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) validateConfig(cfg RunConfig) error {
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("max ticks must be positive, got %d", cfg.MaxTicks)
	}
	if cfg.Gravity < 0 {
		return fmt.Errorf("gravity must not be negative, got %f", cfg.Gravity)
	}
	return nil
}

// Run launches the hero of w with cfg.Launch and ticks until the flight ends
// or cfg.MaxTicks is reached. clock must be the clock w was built with.
func (r *Runner) Run(ctx context.Context, w *World, clock *ManualClock, cfg RunConfig) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}
	if !w.Started() {
		if err := w.Start(); err != nil {
			return nil, err
		}
	}
	if w.Phase() == Preview {
		w.ReadyLaunch()
	}
	if !w.RequestLaunch(cfg.Launch) {
		return nil, fmt.Errorf("%w: phase %s", ErrNotAiming, w.Phase())
	}
	if cfg.Gravity > 0 {
		w.SetGravitationalConstant(cfg.Gravity)
	}

	for _, m := range r.metrics {
		m.Reset()
		if s, ok := m.(Starter); ok {
			s.Start(w)
		}
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.MaxTicks+1),
		Metrics: make(map[string]float64),
		Outcome: OutcomeTimeout,
	}
	result.Samples = append(result.Samples, r.sample(w, 0))

	for i := 0; i < cfg.MaxTicks; i++ {
		select {
		case <-ctx.Done():
			r.finish(w, result)
			return result, ctx.Err()
		default:
		}

		clock.Advance(time.Duration(float64(time.Second) / w.TickRate()))
		elapsed := w.Elapsed()
		ev := w.Tick()
		result.StepsTaken++
		result.Facts = append(result.Facts, ev.Facts...)

		for _, m := range r.metrics {
			m.Observe(w, ev)
		}
		for _, obs := range r.observers {
			obs.OnTick(w, ev)
		}

		if ev.Crash != nil {
			result.Outcome = ev.Crash.Body
			result.Elapsed = ev.Crash.Elapsed
			result.Complete = ev.LevelComplete
			break
		}
		if ev.Escaped {
			result.Outcome = replay.Escaped
			result.Elapsed = elapsed
			break
		}
		result.Elapsed = w.Elapsed()
		result.Samples = append(result.Samples, r.sample(w, i+1))
	}

	r.finish(w, result)
	return result, nil
}

func (r *Runner) finish(w *World, result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	if w.Phase() == Flight {
		w.RequestReset()
	}
}

func (r *Runner) sample(w *World, tick int) Sample {
	hero := w.heroBody()
	s := Sample{
		Tick:     tick,
		Time:     w.Elapsed().Seconds(),
		Position: hero.COM(),
		Velocity: hero.Velocity(),
	}
	if t, ok := w.Body(w.target); ok {
		s.TargetDistance = hero.COM().Sub(t.COM()).Len()
	}
	for _, b := range w.order {
		s.Score += b.Points()
	}
	return s
}
