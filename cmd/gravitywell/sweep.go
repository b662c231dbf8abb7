package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravitywell/internal/automation"
	"github.com/san-kum/gravitywell/internal/config"
	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/metrics"
	"github.com/san-kum/gravitywell/internal/optim"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/storage"
)

// sweepAngles flies one launch per angle in [from, to], all concurrently,
// and tabulates the outcomes.
func sweepAngles(cmd *cobra.Command, args []string) error {
	b, err := newBatch(cmd, args)
	if err != nil {
		return err
	}
	l := b.level

	angles, launches, err := automation.AngleSweep(sweepFrom, sweepTo, sweepStep, speed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := b.ens.Run(ctx, launches, b.cfg)
	if err != nil {
		return err
	}

	fmt.Printf("level %d (%s), speed %.1f, %d launches\n\n", l.ID, l.Name, speed, len(launches))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tOUTCOME\tELAPSED\tCLOSEST\tPEAK SPEED\tSCORE\tFACTS")
	hits := 0
	for i, r := range results {
		outcome := r.Outcome
		if r.Complete {
			outcome += " *"
			hits++
		}
		fmt.Fprintf(w, "%.1f\t%s\t%.2fs\t%.1f\t%.1f\t%.0f\t%d\n",
			angles[i],
			outcome,
			r.Elapsed.Seconds(),
			r.Metrics["closest_approach"],
			r.Metrics["peak_speed"],
			r.Metrics["score_gained"],
			len(r.Facts),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d of %d launches reached %s\n", hits, len(results), l.Target)
	return nil
}

// batch is what the concurrent commands share: one ensemble over a level
// and the run limits from the flags.
type batch struct {
	ens      *sim.Ensemble
	level    *level.Level
	settings *config.Settings
	cfg      sim.RunConfig
}

func newBatch(cmd *cobra.Command, args []string) (*batch, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	reg, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	l, err := levelArg(reg, args)
	if err != nil {
		return nil, err
	}
	params := settings.Params()
	b := &batch{
		ens: sim.NewEnsemble(func(clock *sim.ManualClock) (*sim.World, error) {
			return l.NewWorld(params, sim.WithClock(clock), sim.WithLogger(logger))
		}, metrics.Default),
		level:    l,
		settings: settings,
		cfg:      sim.RunConfig{MaxTicks: maxTicks},
	}
	if cmd.Flags().Changed("g") {
		b.cfg.Gravity = gravity
	}
	return b, nil
}

// searchLaunch grid searches speed and angle for the launch that comes
// closest to the target.
func searchLaunch(cmd *cobra.Command, args []string) error {
	b, err := newBatch(cmd, args)
	if err != nil {
		return err
	}
	l := b.level

	speeds := optim.Range(b.settings.Launch.MinSpeed, b.settings.Launch.MaxSpeed, gridSpeeds)
	angles := optim.Range(-180, 180-360/float64(gridAngles), gridAngles)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("level %d (%s): searching %d launches\n", l.ID, l.Name, len(speeds)*len(angles))
	best, err := optim.NewGridSearch(speeds, angles).Search(ctx, b.ens, b.cfg, metric)
	if err != nil {
		return err
	}
	fmt.Printf("best launch: speed %.2f, angle %.1f°, %s %.3f\n\n", best.Speed, best.Angle, metric, best.Value)
	printResult(best.Result, b.settings.Params().G)
	return nil
}

// monteCarlo perturbs one launch at random and reports how often it still
// reaches the target.
func monteCarlo(cmd *cobra.Command, args []string) error {
	b, err := newBatch(cmd, args)
	if err != nil {
		return err
	}
	l := b.level
	mc := automation.MonteCarloConfig{
		Speed:       speed,
		Angle:       angle,
		SpeedJitter: speedJitter,
		AngleJitter: angleJitter,
		NumTrials:   trials,
		Seed:        seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := b.ens.Run(ctx, mc.Launches(), b.cfg)
	if err != nil {
		return err
	}
	hits, misses := automation.MonteCarloStats(results)
	fmt.Printf("level %d (%s): %d trials around %.1f @ %.0f°\n", l.ID, l.Name, trials, speed, angle)
	fmt.Printf("reached %s: %d\nmissed: %d\n", l.Target, hits, misses)
	return nil
}

// runScenario flies a scripted list of launches in one world and stores
// each of them.
func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	l, err := reg.Get(scenario.Level)
	if err != nil {
		return err
	}

	clock := sim.NewManualClock(time.Unix(0, 0))
	w, err := l.NewWorld(settings.Params(), sim.WithClock(clock), sim.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, w, clock, metrics.Default)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	fmt.Printf("scenario %s on level %d (%s)\n\n", scenario.Name, l.ID, l.Name)
	for i, r := range results {
		step := scenario.Steps[i]
		g := step.Gravity
		if g == 0 {
			g = settings.Gravity.Default
		}
		limit := step.MaxTicks
		if limit == 0 {
			limit = automation.DefaultMaxTicks
		}
		runID, err := st.Save(storage.RunMetadata{
			Level:     l.ID,
			LevelName: l.Name,
			Speed:     step.Speed,
			Angle:     step.Angle,
			Gravity:   g,
			TickRate:  settings.Params().TickRate,
			MaxTicks:  limit,
		}, r)
		if err != nil {
			return err
		}
		fmt.Printf("step %d: %s after %.2fs (%s)\n", i+1, r.Outcome, r.Elapsed.Seconds(), runID)
	}
	if err := st.SaveProgress(w.Snapshot()); err != nil {
		return err
	}
	return nil
}
