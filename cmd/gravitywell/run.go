package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravitywell/internal/metrics"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/storage"
	"github.com/san-kum/gravitywell/internal/vec"
)

// runLaunch flies one launch without a screen. Angle and speed default to
// the hero's own initial velocity unless given on the command line.
func runLaunch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	l, err := levelArg(reg, args)
	if err != nil {
		return err
	}

	clock := sim.NewManualClock(time.Unix(0, 0))
	w, err := l.NewWorld(settings.Params(), sim.WithClock(clock), sim.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	w.ReadyLaunch()
	aimSpeed, aimAngle := vec.ToPolar(w.Aim())
	if cmd.Flags().Changed("speed") {
		aimSpeed = speed
	}
	if cmd.Flags().Changed("angle") {
		aimAngle = angle * math.Pi / 180
	}
	cfg := sim.RunConfig{
		Launch:   vec.FromPolar(aimSpeed, aimAngle),
		MaxTicks: maxTicks,
	}
	if cmd.Flags().Changed("g") {
		cfg.Gravity = gravity
	}

	runner := sim.NewRunner()
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("level %d (%s): launching at %.1f, %.0f°\n", l.ID, l.Name, aimSpeed, aimAngle*180/math.Pi)
	start := time.Now()
	result, err := runner.Run(ctx, w, clock, cfg)
	if err != nil {
		return err
	}
	logger.Info("run finished", "outcome", result.Outcome, "steps", result.StepsTaken, "wall", time.Since(start))

	printResult(result, w.G())

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Level:     l.ID,
		LevelName: l.Name,
		Speed:     aimSpeed,
		Angle:     aimAngle * 180 / math.Pi,
		Gravity:   w.G(),
		TickRate:  settings.Params().TickRate,
		MaxTicks:  maxTicks,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func printResult(result *sim.Result, g float64) {
	outcome := result.Outcome
	if result.Complete {
		outcome += " (target reached)"
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "outcome\t%s\n", outcome)
	fmt.Fprintf(tw, "elapsed\t%.2fs\n", result.Elapsed.Seconds())
	fmt.Fprintf(tw, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(tw, "gravity\t%.2f\n", g)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(tw, "%s\t%.3f\n", strings.ReplaceAll(name, "_", " "), result.Metrics[name])
	}
	for _, f := range result.Facts {
		fmt.Fprintf(tw, "fact\t%s\n", f)
	}
	tw.Flush()
}
