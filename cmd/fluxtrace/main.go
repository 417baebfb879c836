package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/qsun/fluxtrace/internal/analysis"
	"github.com/qsun/fluxtrace/internal/bfield"
	"github.com/qsun/fluxtrace/internal/config"
	"github.com/qsun/fluxtrace/internal/equilibrium"
	"github.com/qsun/fluxtrace/internal/flux"
	"github.com/qsun/fluxtrace/internal/integrators"
	"github.com/qsun/fluxtrace/internal/storage"
	"github.com/qsun/fluxtrace/internal/trace"
	"github.com/qsun/fluxtrace/internal/viz"
)

var (
	dataDir    string
	eqFile     string
	configFile string
	volume     int
	integName  string
	step       float64
	turns      int
	adaptive   bool
	tolerance  float64
	startS     float64
	startTheta float64
	numLines   int
	innerS     float64
	outerS     float64
	plotWidth  int
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluxtrace",
		Short: "magnetic field-line tracing and Poincaré analysis",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fluxtrace", "data directory")
	rootCmd.PersistentFlags().StringVar(&eqFile, "eq", "", "equilibrium file (yaml); analytic tokamak when empty")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run config file (yaml)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace a single field line",
		RunE:  runTrace,
	}
	addTraceFlags(traceCmd)
	traceCmd.Flags().Float64Var(&startS, "s", 0.5, "start radial coordinate")
	traceCmd.Flags().Float64Var(&startTheta, "theta", 0.0, "start poloidal angle")

	poincareCmd := &cobra.Command{
		Use:   "poincare",
		Short: "trace an ensemble of lines and plot the section",
		RunE:  runPoincare,
	}
	addTraceFlags(poincareCmd)
	addSeedingFlags(poincareCmd)
	poincareCmd.Flags().IntVar(&plotWidth, "width", 72, "plot width (cells)")
	poincareCmd.Flags().IntVar(&plotHeight, "height", 24, "plot height (cells)")

	convertCmd := &cobra.Command{
		Use:   "convert [s] [theta] [zeta]",
		Short: "convert internal coordinates to physical coordinates",
		Args:  cobra.ExactArgs(3),
		RunE:  runConvert,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the rotational transform profile",
		RunE:  runProfile,
	}
	addTraceFlags(profileCmd)
	addSeedingFlags(profileCmd)

	residueCmd := &cobra.Command{
		Use:   "residue",
		Short: "Greene residue of a periodic line",
		RunE:  runResidue,
	}
	addTraceFlags(residueCmd)
	residueCmd.Flags().Float64Var(&startS, "s", 0.5, "start radial coordinate")
	residueCmd.Flags().Float64Var(&startTheta, "theta", 0.0, "start poloidal angle")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "replot a stored section",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 72, "plot width (cells)")
	plotCmd.Flags().IntVar(&plotHeight, "height", 24, "plot height (cells)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the section accumulate while tracing",
		RunE:  runLive,
	}
	addTraceFlags(liveCmd)
	addSeedingFlags(liveCmd)

	rootCmd.AddCommand(traceCmd, poincareCmd, convertCmd, profileCmd, residueCmd, listCmd, plotCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTraceFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&volume, "volume", 1, "volume index")
	cmd.Flags().StringVar(&integName, "integrator", "rk4", "integrator (euler|rk4|rk45)")
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "zeta step")
	cmd.Flags().IntVar(&turns, "turns", config.DefaultTurns, "toroidal turns")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-8, "adaptive tolerance")
}

func addSeedingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numLines, "lines", config.DefaultLines, "number of field lines")
	cmd.Flags().Float64Var(&innerS, "inner", config.DefaultInnerS, "innermost start radius")
	cmd.Flags().Float64Var(&outerS, "outer", config.DefaultOuterS, "outermost start radius")
}

// session bundles everything a command needs to trace lines.
type session struct {
	eq     *equilibrium.Data
	oracle flux.Oracle
	cfg    trace.Config
}

func newSession(cmd *cobra.Command) (*session, error) {
	runCfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		runCfg = loaded
		if eqFile == "" {
			eqFile = runCfg.Equilibrium
		}
	}

	// CLI flags override config file values.
	if !cmd.Flags().Changed("volume") && runCfg.Volume > 0 {
		volume = runCfg.Volume
	}
	if !cmd.Flags().Changed("integrator") && runCfg.Integrator != "" {
		integName = runCfg.Integrator
	}
	if !cmd.Flags().Changed("step") {
		step = runCfg.Step
	}
	if !cmd.Flags().Changed("turns") {
		turns = runCfg.Turns
	}
	if !cmd.Flags().Changed("adaptive") {
		adaptive = runCfg.Adaptive
	}
	if f := cmd.Flags().Lookup("lines"); f != nil && !f.Changed {
		numLines = runCfg.Seeding.Lines
	}
	if f := cmd.Flags().Lookup("inner"); f != nil && !f.Changed {
		innerS = runCfg.Seeding.InnerS
	}
	if f := cmd.Flags().Lookup("outer"); f != nil && !f.Changed {
		outerS = runCfg.Seeding.OuterS
	}

	eq := equilibrium.Default()
	if eqFile != "" {
		loaded, err := equilibrium.Load(eqFile)
		if err != nil {
			return nil, err
		}
		eq = loaded
	}

	oracle, err := bfield.FromEquilibrium(eq)
	if err != nil {
		return nil, err
	}

	cfg := trace.DefaultConfig()
	cfg.Step = step
	cfg.Turns = turns
	cfg.Adaptive = adaptive
	cfg.Tolerance = tolerance

	return &session{eq: eq, oracle: oracle, cfg: cfg}, nil
}

func (s *session) tracer() (*trace.Tracer, error) {
	prob, err := flux.New(s.eq, volume, s.oracle)
	if err != nil {
		return nil, err
	}
	integ, err := integrators.New(integName)
	if err != nil {
		return nil, err
	}
	return trace.New(prob, integ), nil
}

func (s *session) factory() func() *trace.Tracer {
	return func() *trace.Tracer {
		tr, err := s.tracer()
		if err != nil {
			// Construction was already validated once in the caller.
			panic(err)
		}
		return tr
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	tr, err := sess.tracer()
	if err != nil {
		return err
	}

	fmt.Printf("tracing %s line from s=%.3f theta=%.3f...\n", sess.eq.Name, startS, startTheta)
	start := time.Now()

	res, err := tr.Run(context.Background(), flux.State{startS, startTheta}, sess.cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sess.eq.Name, tr, sess.cfg, integName, []*trace.Result{res})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	fmt.Printf("crossings: %d\n", len(res.Crossings))
	fmt.Printf("iota: %.6f\n", analysis.RotationNumber(res))
	return nil
}

func runPoincare(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	tr, err := sess.tracer()
	if err != nil {
		return err
	}

	starts := trace.RadialStarts(numLines, innerS, outerS)

	fmt.Printf("tracing %d lines for %d turns...\n", numLines, sess.cfg.Turns)
	start := time.Now()

	results, err := trace.NewEnsemble(sess.factory(), starts).Run(context.Background(), sess.cfg)
	if err != nil {
		return err
	}

	lines := make([][]flux.State, 0, len(results))
	for _, res := range results {
		points, err := tr.Convert(res)
		if err != nil {
			return err
		}
		lines = append(lines, points)
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Print(viz.Section(lines, tr.Problem().Projection(), plotWidth, plotHeight))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sess.eq.Name, tr, sess.cfg, integName, results)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	tr, err := sess.tracer()
	if err != nil {
		return err
	}

	stz := make(flux.State, 3)
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", arg, err)
		}
		stz[i] = v
	}

	p, err := tr.Problem().ConvertCoords(stz)
	if err != nil {
		return err
	}

	proj := tr.Problem().Projection()
	fmt.Printf("geometry: %s (%s)\n", tr.Problem().Geometry(), proj.Kind)
	fmt.Printf("physical: (%.6f, %.6f, %.6f)\n", p[0], p[1], p[2])
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	if _, err := sess.tracer(); err != nil {
		return err
	}

	radii, iotas, err := analysis.IotaProfile(context.Background(), sess.factory(), sess.cfg, numLines, innerS, outerS)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(iotas,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("iota vs s in [%.2f, %.2f]", radii[0], radii[len(radii)-1])),
	)
	fmt.Println(graph)
	return nil
}

func runResidue(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	tr, err := sess.tracer()
	if err != nil {
		return err
	}

	integ, err := integrators.New(integName)
	if err != nil {
		return err
	}

	res, err := analysis.Residue(context.Background(), tr.Problem(), integ,
		flux.State{startS, startTheta}, sess.cfg)
	if err != nil {
		return err
	}

	fmt.Printf("residue over %d turns: %.6f\n", sess.cfg.Turns, res)
	switch {
	case res > 0 && res < 1:
		fmt.Println("orbit is elliptic (stable)")
	default:
		fmt.Println("orbit is hyperbolic (unstable)")
	}
	return nil
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
	fmt.Fprintln(w, "ID\tGEOMETRY\tVOL\tTIME\tTURNS\tLINES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Geometry,
			run.Volume,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Turns,
			run.Lines,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	lines, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("geometry: %s, %d lines x %d turns\n\n", meta.Geometry, meta.Lines, meta.Turns)

	proj := flux.Projection{
		Kind:   flux.PlotKind(meta.PlotKind),
		XLabel: meta.XLabel,
		YLabel: meta.YLabel,
	}
	fmt.Print(viz.Section(lines, proj, plotWidth, plotHeight))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	tr, err := sess.tracer()
	if err != nil {
		return err
	}

	starts := trace.RadialStarts(numLines, innerS, outerS)
	model := viz.NewLive(tr, sess.cfg, starts)

	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
