package sim

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/gravitywell/internal/vec"
)

// Factory builds a fresh, unstarted world driven by clock.
type Factory func(clock *ManualClock) (*World, error)

// Ensemble flies many launches of the same level concurrently, each in its
// own world.
type Ensemble struct {
	build   Factory
	metrics func() []Metric
}

func NewEnsemble(build Factory, metrics func() []Metric) *Ensemble {
	return &Ensemble{build: build, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, launches []vec.Vec2, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(launches))
	errs := make([]error, len(launches))

	var wg sync.WaitGroup
	for i, launch := range launches {
		wg.Add(1)
		go func(idx int, launch vec.Vec2) {
			defer wg.Done()

			clock := NewManualClock(time.Unix(0, 0))
			w, err := e.build(clock)
			if err != nil {
				errs[idx] = err
				return
			}

			runner := NewRunner()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					runner.AddMetric(m)
				}
			}

			cfgCopy := cfg
			cfgCopy.Launch = launch
			results[idx], errs[idx] = runner.Run(ctx, w, clock, cfgCopy)
		}(i, launch)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
