package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/cellsolve/internal/analysis"
	"github.com/san-kum/cellsolve/internal/config"
	"github.com/san-kum/cellsolve/internal/models"
	"github.com/san-kum/cellsolve/internal/odesys"
	"github.com/san-kum/cellsolve/internal/plot"
	"github.com/san-kum/cellsolve/internal/runner"
	"github.com/san-kum/cellsolve/internal/solver"
	"github.com/san-kum/cellsolve/internal/store"
	"github.com/san-kum/cellsolve/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	solverName string
	interval   []float64
	stepSize   float64
	timeit     int
	configFile string
	verbose    bool
	// Plot/analyze options
	stateIdx   int
	plotHeight int
	plotWidth  int
	// Live view options
	liveDt  float64
	liveFPS int
)

var log zerolog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellsolve",
		Short: "integrate ODE cell models",
		Long:  "cellsolve integrates ODE models that follow the state/rate/variable vector contract, using fixed-step or variable-step solvers.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModel,
	}
	runCmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "solver method (euler, dopri5, bdf)")
	runCmd.Flags().Float64SliceVar(&interval, "interval", []float64{config.DefaultStart, config.DefaultEnd}, "integration interval as start,end")
	runCmd.Flags().Float64Var(&stepSize, "step-size", config.DefaultStepSize, "step size to output results at")
	runCmd.Flags().IntVar(&timeit, "timeit", 0, "number of repetitions for timing (0 disables)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trajectory, one curve per state",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", plot.DefaultHeight, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", plot.DefaultWidth, "plot width")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one state series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&stateIdx, "state", 0, "state index to analyze")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list registered models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range models.Names() {
				fmt.Println(name)
			}
		},
	}

	solversCmd := &cobra.Command{
		Use:   "solvers",
		Short: "list recognized solver methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range solver.Names() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch a model integrate in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&liveDt, "dt", 0.01, "integration timestep")
	liveCmd.Flags().IntVar(&liveFPS, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, modelsCmd, solversCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override config file values.
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	if cmd.Flags().Changed("solver") {
		cfg.Solver = solverName
	}
	if cmd.Flags().Changed("interval") {
		if len(interval) != 2 {
			return fmt.Errorf("interval needs exactly two values, got %d", len(interval))
		}
		cfg.Start = interval[0]
		cfg.End = interval[1]
	}
	if cmd.Flags().Changed("step-size") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("timeit") {
		cfg.Repeat = timeit
	}
	if cmd.InheritedFlags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	r := runner.New(log)
	res, err := r.Run(runner.Config{
		Model:    cfg.Model,
		Solver:   cfg.Solver,
		Interval: odesys.Interval{Start: cfg.Start, End: cfg.End},
		StepSize: cfg.StepSize,
		Repeat:   cfg.Repeat,
	})
	if err != nil {
		// An unknown solver prints usage and skips integration instead of
		// failing the process.
		if errors.Is(err, odesys.ErrUnknownMethod) {
			fmt.Printf("%v\n\n", err)
			return cmd.Usage()
		}
		return err
	}

	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(store.RunMetadata{
		Model:     cfg.Model,
		Solver:    cfg.Solver,
		Start:     cfg.Start,
		End:       cfg.End,
		StepSize:  cfg.StepSize,
		Partial:   res.Partial,
		ElapsedMS: res.Elapsed.Seconds() * 1000,
		Labels:    res.Labels,
	}, res.Trajectory)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", res.Trajectory.Len())
	fmt.Printf("elapsed: %v\n", res.Elapsed)
	if res.Partial {
		fmt.Println("note: solver stopped early; trajectory is partial")
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tSOLVER\tINTERVAL\tSTEP\tSAMPLES\tPARTIAL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g)\t%g\t%d\t%v\n",
			run.ID, run.Model, run.Solver, run.Start, run.End, run.StepSize, run.Samples, run.Partial)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmodel: %s\nsolver: %s\nsamples: %d\n\n", meta.ID, meta.Model, meta.Solver, tr.Len())
	return plot.Render(os.Stdout, tr, meta.Labels, plotHeight, plotWidth)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data")
	}
	if stateIdx < 0 || stateIdx >= len(tr.Series) {
		return fmt.Errorf("state index %d out of range (0..%d)", stateIdx, len(tr.Series)-1)
	}

	ps := analysis.PowerSpectrum(tr.Series[stateIdx])
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (state %d)", stateIdx)),
	)
	fmt.Printf("frequency analysis: %s\nmodel: %s\n\n", meta.ID, meta.Model)
	fmt.Println(graph)
	fmt.Println()

	duration := meta.End - meta.Start
	freq, _ := analysis.DominantFrequency(plotData, duration)
	fmt.Printf("dominant frequency: %.3f per time unit\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f time units\n", 1.0/freq)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return store.WriteCSV(os.Stdout, tr, meta.Labels)
}

func runLive(cmd *cobra.Command, args []string) error {
	name := models.Default
	if len(args) > 0 {
		name = args[0]
	}

	sys, err := models.Get(name)
	if err != nil {
		return err
	}

	return tui.Run(name, sys, liveDt, liveFPS)
}
