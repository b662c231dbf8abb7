package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/vec"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a scripted sequence of launches on one level.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Level       int            `yaml:"level"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one launch. Zero Gravity keeps the default.
type ScenarioStep struct {
	Angle    float64 `yaml:"angle"`
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	MaxTicks int     `yaml:"max_ticks"`
}

const DefaultMaxTicks = 3000

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScenario, path)
	}

	return &scenario, nil
}

// RunScenario flies every step in the same world, so scores, facts and the
// replay buffer carry over between launches. A reached target is answered
// with Stay so the remaining steps still fly.
func RunScenario(ctx context.Context, scenario *Scenario, w *sim.World, clock *sim.ManualClock, metrics func() []sim.Metric) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		runner := sim.NewRunner()
		if metrics != nil {
			for _, m := range metrics() {
				runner.AddMetric(m)
			}
		}

		if w.AwaitingConfirmation() {
			w.Stay()
		}

		maxTicks := step.MaxTicks
		if maxTicks == 0 {
			maxTicks = DefaultMaxTicks
		}
		cfg := sim.RunConfig{
			Launch:   vec.FromPolar(step.Speed, step.Angle*math.Pi/180),
			MaxTicks: maxTicks,
			Gravity:  step.Gravity,
		}

		result, err := runner.Run(ctx, w, clock, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// AngleSweep spreads launches of one speed over [from, to] degrees.
func AngleSweep(from, to, step, speed float64) ([]float64, []vec.Vec2, error) {
	if step <= 0 {
		return nil, nil, fmt.Errorf("step must be positive, got %g", step)
	}
	if to < from {
		return nil, nil, fmt.Errorf("empty angle range %g..%g", from, to)
	}
	var angles []float64
	var launches []vec.Vec2
	for i := 0; ; i++ {
		a := from + float64(i)*step
		if a > to+1e-9 {
			break
		}
		angles = append(angles, a)
		launches = append(launches, vec.FromPolar(speed, a*math.Pi/180))
	}
	return angles, launches, nil
}

// MonteCarloConfig perturbs a base launch at random.
type MonteCarloConfig struct {
	Speed       float64
	Angle       float64
	SpeedJitter float64
	AngleJitter float64
	NumTrials   int
	Seed        int64
}

// Launches draws the trial launches. A zero seed uses the current time.
func (cfg MonteCarloConfig) Launches() []vec.Vec2 {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]vec.Vec2, cfg.NumTrials)
	for i := range out {
		speed := cfg.Speed + (rng.Float64()-0.5)*2*cfg.SpeedJitter
		angle := cfg.Angle + (rng.Float64()-0.5)*2*cfg.AngleJitter
		out[i] = vec.FromPolar(speed, angle*math.Pi/180)
	}
	return out
}

// MonteCarloStats counts the trials that reached the target.
func MonteCarloStats(results []*sim.Result) (hits int, misses int) {
	for _, r := range results {
		if r.Complete {
			hits++
		} else {
			misses++
		}
	}
	return
}
