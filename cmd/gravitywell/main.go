package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/gravitywell/internal/config"
	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/storage"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	levelFiles []string

	// run
	angle    float64
	speed    float64
	maxTicks int
	gravity  float64
	noSave   bool

	// play
	resume bool
	theme  string

	// analysis
	column string
	xAxis  string
	yAxis  string
	out    string

	// sweep
	sweepFrom float64
	sweepTo   float64
	sweepStep float64

	// aim
	gridSpeeds int
	gridAngles int
	metric     string

	// montecarlo
	trials      int
	speedJitter float64
	angleJitter float64
	seed        int64

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// main registers the commands and runs the root command, exiting with
// status 1 if it fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravitywell",
		Short: "gravitational sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lvl := slog.LevelWarn
			if verbose {
				lvl = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		},
		RunE: playLevel,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravitywell", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "settings preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringSliceVar(&levelFiles, "level-file", nil, "extra level files (yaml)")

	playCmd := &cobra.Command{
		Use:   "play [level]",
		Short: "play a level in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playLevel,
	}
	playCmd.Flags().BoolVar(&resume, "resume", false, "restore saved progress")
	playCmd.Flags().StringVar(&theme, "theme", "deepspace", "colour theme")

	runCmd := &cobra.Command{
		Use:   "run [level]",
		Short: "fly one launch headlessly and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLaunch,
	}
	runCmd.Flags().Float64Var(&angle, "angle", -90, "launch angle in degrees (screen coordinates, y down)")
	runCmd.Flags().Float64Var(&speed, "speed", 18, "launch speed")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 3000, "tick limit")
	runCmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot target distance and speed of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "distance", "trajectory column")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot one trajectory column against another",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x", "x", "horizontal column")
	phaseCmd.Flags().StringVar(&yAxis, "y", "y", "vertical column")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and trajectory as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the trajectory as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the level and the flight path as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	levelsCmd := &cobra.Command{
		Use:   "levels",
		Short: "list levels",
		RunE:  listLevels,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective settings",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVarP(&out, "out", "o", "", "write the settings to a file instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list settings presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [level]",
		Short: "fly a range of launch angles concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepAngles,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -180, "first angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 180, "last angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 15, "angle step in degrees")
	sweepCmd.Flags().Float64Var(&speed, "speed", 18, "launch speed")
	sweepCmd.Flags().IntVar(&maxTicks, "max-ticks", 3000, "tick limit per launch")
	sweepCmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")

	aimCmd := &cobra.Command{
		Use:   "aim [level]",
		Short: "grid search speed and angle for the best launch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  searchLaunch,
	}
	aimCmd.Flags().IntVar(&gridSpeeds, "speeds", 7, "speeds between the launch limits")
	aimCmd.Flags().IntVar(&gridAngles, "angles", 36, "angles around the full circle")
	aimCmd.Flags().StringVar(&metric, "metric", "closest_approach", "metric to minimise")
	aimCmd.Flags().IntVar(&maxTicks, "max-ticks", 3000, "tick limit per launch")
	aimCmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [level]",
		Short: "fly random perturbations of one launch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  monteCarlo,
	}
	monteCarloCmd.Flags().Float64Var(&angle, "angle", -90, "launch angle in degrees")
	monteCarloCmd.Flags().Float64Var(&speed, "speed", 18, "launch speed")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of launches")
	monteCarloCmd.Flags().Float64Var(&speedJitter, "speed-jitter", 0.5, "largest speed offset")
	monteCarloCmd.Flags().Float64Var(&angleJitter, "angle-jitter", 2, "largest angle offset in degrees")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	monteCarloCmd.Flags().IntVar(&maxTicks, "max-ticks", 3000, "tick limit per launch")
	monteCarloCmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "fly a scripted list of launches and store them",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(playCmd, runCmd, listCmd, plotCmd, analyzeCmd, phaseCmd, exportJSONCmd, exportCSVCmd,
		exportSVGCmd, levelsCmd, configCmd, presetsCmd, sweepCmd, aimCmd, monteCarloCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings starts from the defaults, or the config file when given, and
// applies the preset on top.
func loadSettings() (*config.Settings, error) {
	s := config.DefaultSettings()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if preset != "" {
		apply, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q, have %v", preset, config.ListPresets())
		}
		apply(s)
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func loadRegistry() (*level.Registry, error) {
	reg := level.NewRegistry()
	for _, path := range levelFiles {
		l, err := reg.AddFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("level file loaded", "path", path, "id", l.ID)
	}
	return reg, nil
}

func levelArg(reg *level.Registry, args []string) (*level.Level, error) {
	id := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("level must be a number: %w", err)
		}
		id = n
	}
	return reg.Get(id)
}

// runArg resolves the run named in args, or the latest run.
func runArg(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}
