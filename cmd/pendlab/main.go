package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avelk/pendlab/internal/analysis"
	"github.com/avelk/pendlab/internal/config"
	"github.com/avelk/pendlab/internal/integrators"
	"github.com/avelk/pendlab/internal/metrics"
	"github.com/avelk/pendlab/internal/pendulum"
	"github.com/avelk/pendlab/internal/plot"
	"github.com/avelk/pendlab/internal/sim"
	"github.com/avelk/pendlab/internal/storage"
	"github.com/avelk/pendlab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	theta1     float64
	theta2     float64
	omega1     float64
	omega2     float64
	l1         float64
	l2         float64
	m1         float64
	m2         float64
	gravity    float64
	integrator string
	configFile string
	preset     string
	speed      float64
	trailLen   int
	outDir     string
	xAxis      int
	yAxis      int
	sweepN     int
	sweepDelta float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendlab",
		Short: "double pendulum simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trajectory",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "time scale for the animation")
	liveCmd.Flags().IntVar(&trailLen, "trail", config.DefaultTrail, "bob-2 trail length")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space scatter of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 1, "state index for x-axis (0-3)")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 3, "state index for y-axis (0-3)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent",
		RunE:  lyapunovRun,
	}
	addSimFlags(lyapunovCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare rk4 and euler energy drift",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run perturbed initial conditions in parallel",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepN, "n", 8, "number of trajectories")
	sweepCmd.Flags().Float64Var(&sweepDelta, "delta", 1e-6, "theta1 perturbation between trajectories")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render PNG charts for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list starting presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		lyapunovCmd, compareCmd, sweepCmd, renderCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&theta1, "theta1", 0.0, "initial upper angle")
	cmd.Flags().Float64Var(&theta2, "theta2", 2.0, "initial lower angle")
	cmd.Flags().Float64Var(&omega1, "omega1", 0.0, "initial upper angular velocity")
	cmd.Flags().Float64Var(&omega2, "omega2", 0.0, "initial lower angular velocity")
	cmd.Flags().Float64Var(&l1, "l1", pendulum.DefaultLength, "upper link length")
	cmd.Flags().Float64Var(&l2, "l2", pendulum.DefaultLength, "lower link length")
	cmd.Flags().Float64Var(&m1, "m1", pendulum.DefaultMass, "upper mass")
	cmd.Flags().Float64Var(&m2, "m2", pendulum.DefaultMass, "lower mass")
	cmd.Flags().Float64Var(&gravity, "gravity", pendulum.DefaultGravity, "gravitational acceleration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

// effectiveConfig merges preset, config file, and CLI flags into one
// validated configuration. Flag values win when explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagBound := map[string]func(){
		"dt":         func() { cfg.Dt = dt },
		"time":       func() { cfg.Duration = duration },
		"integrator": func() { cfg.Integrator = integrator },
		"theta1":     func() { cfg.InitState.Theta1 = theta1 },
		"theta2":     func() { cfg.InitState.Theta2 = theta2 },
		"omega1":     func() { cfg.InitState.Omega1 = omega1 },
		"omega2":     func() { cfg.InitState.Omega2 = omega2 },
		"l1":         func() { cfg.Params.L1 = l1 },
		"l2":         func() { cfg.Params.L2 = l2 },
		"m1":         func() { cfg.Params.M1 = m1 },
		"m2":         func() { cfg.Params.M2 = m2 },
		"gravity":    func() { cfg.Params.Gravity = gravity },
	}
	for name, apply := range flagBound {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	// No preset and no file: flags are the whole configuration.
	if preset == "" && configFile == "" {
		cfg.Dt = dt
		cfg.Duration = duration
		cfg.Integrator = integrator
		cfg.InitState = config.InitStateConfig{
			Theta1: theta1, Theta2: theta2,
			Omega1: omega1, Omega2: omega2,
		}
		cfg.Params = config.ParamsConfig{
			L1: l1, L2: l2, M1: m1, M2: m2, Gravity: gravity,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, integrators.Method, error) {
	method, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(cfg.PhysicalParams(), method)
	if err != nil {
		return nil, nil, err
	}
	return s, method, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, _, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	params := cfg.PhysicalParams()
	s.AddMetric(metrics.NewEnergyDrift(params))
	s.AddMetric(metrics.NewMeanEnergy(params))
	s.AddMetric(metrics.NewFlipCount())

	fmt.Println("running simulation...")
	start := time.Now()

	result, err := s.Run(context.Background(), cfg.InitialState(), sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Dt, cfg.Duration, cfg.Integrator, params, cfg.InitialState(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("speed") {
		cfg.Display.Speed = speed
	}
	if cmd.Flags().Changed("trail") {
		cfg.Display.Trail = trailLen
	}

	method, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	session, err := sim.NewSession(cfg.PhysicalParams(), method, cfg.InitialState())
	if err != nil {
		return err
	}

	return viz.Run(session, cfg.Display.Trail, cfg.Display.Speed)
}

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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tTHETA1\tTHETA2")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%.3f\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.InitState.Theta1,
			run.InitState.Theta2,
		)
	}

	return w.Flush()
}

var stateLabels = [4]string{
	"theta1 (upper angle)",
	"theta2 (lower angle)",
	"omega1 (upper angular velocity)",
	"omega2 (lower angular velocity)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	for idx, caption := range stateLabels {
		data := make([]float64, len(states))
		for i, s := range states {
			data[i] = s.Vector()[idx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	if xAxis < 0 || xAxis > 3 || yAxis < 0 || yAxis > 3 {
		return fmt.Errorf("axis indices must be 0-3")
	}

	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase space: %s\n", meta.ID)
	fmt.Printf("x: %s, y: %s\n\n", stateLabels[xAxis], stateLabels[yAxis])

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i, s := range states {
		v := s.Vector()
		xData[i] = v[xAxis]
		yData[i] = v[yAxis]
	}

	printScatter(xData, yData)
	return nil
}

func printScatter(xData, yData []float64) {
	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	const width, height = 70, 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			switch {
			case i < len(xData)/3:
				canvas[py][px] = '.'
			case i < 2*len(xData)/3:
				canvas[py][px] = 'o'
			default:
				canvas[py][px] = '*'
			}
		}
	}

	for _, row := range canvas {
		fmt.Println(string(row))
	}
	fmt.Printf("\nx: [%.2f, %.2f]  y: [%.2f, %.2f]\n", xMin, xMax, yMin, yMax)
	fmt.Println("legend: . = early, o = middle, * = late")
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	data := make([]float64, len(states))
	for i, s := range states {
		data[i] = s.Theta1
	}

	padded := make([]float64, analysis.NextPow2(len(data)))
	copy(padded, data)
	ps := analysis.PowerSpectrum(padded)

	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (theta1)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func lyapunovRun(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	method, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	fmt.Println("estimating largest Lyapunov exponent...")
	lam := analysis.LyapunovExponent(cfg.PhysicalParams(), method,
		cfg.InitialState(), cfg.Dt, cfg.Duration, 1e-8)

	fmt.Printf("lambda: %.4f /s\n", lam)
	if lam > 0.01 {
		fmt.Println("trajectories diverge exponentially (chaotic regime)")
	} else {
		fmt.Println("no clear exponential divergence (regular regime)")
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs)\n\n", cfg.Dt, cfg.Duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_THETA1\tENERGY_DRIFT\tTIME_MS")

	for _, name := range []string{"rk4", "euler"} {
		method, err := integrators.New(name)
		if err != nil {
			return err
		}
		s, err := sim.New(cfg.PhysicalParams(), method)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := s.Run(context.Background(), cfg.InitialState(), sim.Config{
			Dt:       cfg.Dt,
			Duration: cfg.Duration,
		})
		elapsed := time.Since(start)
		if err != nil {
			return err
		}

		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%s\t%.6f\t%.2e\t%.2f\n",
			name, final.Theta1, result.EnergyDrift,
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	method, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	build := func() (*sim.Simulator, error) {
		return sim.New(cfg.PhysicalParams(), method)
	}

	x0s := sim.PerturbTheta1(cfg.InitialState(), sweepN, sweepDelta)

	fmt.Printf("sweeping %d trajectories, theta1 step %.2g\n\n", sweepN, sweepDelta)
	start := time.Now()

	results, err := sim.NewSweep(build).Run(context.Background(), x0s, sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	ref := results[0].States[len(results[0].States)-1]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTHETA1_0\tFINAL_THETA1\tFINAL_THETA2\tDIVERGENCE")
	for i, r := range results {
		final := r.States[len(r.States)-1]
		fmt.Fprintf(w, "%d\t%.8f\t%.4f\t%.4f\t%.4g\n",
			i, x0s[i].Theta1, final.Theta1, final.Theta2, final.Sub(ref).Norm())
	}

	return w.Flush()
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	outputs := []struct {
		name   string
		render func(string) error
	}{
		{"angles.png", func(p string) error { return plot.Angles(p, times, states) }},
		{"energy.png", func(p string) error { return plot.Energy(p, times, states, meta.Params) }},
		{"trace.png", func(p string) error { return plot.Trace(p, states, meta.Params) }},
	}

	for _, out := range outputs {
		path := filepath.Join(outDir, fmt.Sprintf("%s_%s", meta.ID, out.name))
		if err := out.render(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, states, times)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, states, times)
}
