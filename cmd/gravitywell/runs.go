package main

import (
	"fmt"
	"image"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravitywell/internal/analysis"
	"github.com/san-kum/gravitywell/internal/config"
	"github.com/san-kum/gravitywell/internal/export"
	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLEVEL\tTIME\tSPEED\tANGLE\tG\tOUTCOME\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\t%.0f\t%.1f\t%s\t%.2fs\n",
			run.ID,
			run.Level,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Speed,
			run.Angle,
			run.Gravity,
			run.Outcome,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("level: %d (%s)\n", meta.Level, meta.LevelName)
	fmt.Printf("outcome: %s after %.2fs\n", meta.Outcome, meta.Elapsed)
	fmt.Printf("samples: %d\n\n", len(samples))

	for _, c := range []struct{ column, caption string }{
		{analysis.ColumnDistance, "target distance"},
		{analysis.ColumnSpeed, "speed"},
	} {
		data, err := analysis.Series(samples, c.column)
		if err != nil {
			return err
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c.caption),
		))
		fmt.Println()
	}
	return nil
}

// analyzeRun estimates the period of a column. Samples are taken per tick,
// so the rate comes from the recorded times.
func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("run %s is too short to analyse", runID)
	}

	data, err := analysis.Series(samples, column)
	if err != nil {
		return err
	}
	times, _ := analysis.Series(samples, analysis.ColumnTime)

	rate := meta.TickRate
	if span := times[len(times)-1] - times[0]; span > 0 {
		rate = float64(len(times)-1) / span
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("column: %s, %d samples at %.1f/s\n\n", column, len(data), rate)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[1:max(2, len(ps)/4)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	))
	fmt.Println()

	period := analysis.DominantPeriod(data, rate)
	if period > 0 {
		fmt.Printf("dominant period: %.3f s\n", period)
		fmt.Printf("dominant frequency: %.3f hz\n", 1/period)
	} else {
		fmt.Println("no dominant period")
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	crossings := analysis.Crossings(times, data, mean)
	fmt.Printf("upward mean crossings: %d\n", len(crossings))
	if len(crossings) > 1 {
		fmt.Printf("mean crossing interval: %.3f s\n", (crossings[len(crossings)-1]-crossings[0])/float64(len(crossings)-1))
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	p, err := analysis.NewPortrait(samples, xAxis, yAxis)
	if err != nil {
		return err
	}
	screenY := yAxis == analysis.ColumnY
	fmt.Printf("%s vs %s: %s\n\n", yAxis, xAxis, runID)
	fmt.Print(p.ASCII(80, 30, screenY))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	return st.ExportJSON(runID, out)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	return st.ExportCSV(runID, out)
}

// exportSVG draws the run's level at its starting positions with the
// recorded path on top.
func exportSVG(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	runID, err := runArg(st, args)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	l, err := reg.Get(meta.Level)
	if err != nil {
		return err
	}

	screen := image.Pt(settings.Screen.Width, settings.Screen.Height)
	var bodies []export.Body
	for _, d := range l.Bodies {
		if d.Name == l.Hero {
			continue
		}
		fill := "#aa88ff"
		switch d.Name {
		case l.Target:
			fill = "#00ffff"
		case l.Home:
			fill = "#3399ff"
		}
		pos := level.ScreenPosition(d.Position, screen)
		bodies = append(bodies, export.Body{
			Name: d.Name,
			Rect: image.Rectangle{Min: pos, Max: pos.Add(d.Size.Pixels(screen))},
			Fill: fill,
		})
	}

	svg := export.TrajectorySVG(samples, bodies, screen, "#e8c008")
	if out == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(out, []byte(svg), 0644)
}

func listLevels(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTARGET\tBODIES\tFACTS\tDESCRIPTION")
	for _, id := range reg.List() {
		l, err := reg.Get(id)
		if err != nil {
			return err
		}
		facts := 0
		for _, b := range l.Bodies {
			facts += len(b.Facts)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n", l.ID, l.Name, l.Target, len(l.Bodies), facts, l.Description)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if out != "" {
		return config.Save(out, s)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
