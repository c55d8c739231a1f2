package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/ljcell/internal/analysis"
	"github.com/san-kum/ljcell/internal/config"
	"github.com/san-kum/ljcell/internal/dynamo"
	"github.com/san-kum/ljcell/internal/md"
	"github.com/san-kum/ljcell/internal/metrics"
	"github.com/san-kum/ljcell/internal/potentials"
	"github.com/san-kum/ljcell/internal/storage"
	"github.com/san-kum/ljcell/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	sigma     float64
	epsilon   float64
	cutoff    float64
	workers   int
	seed      int64
	debug     bool
	latticeID string
	unitCells int
	density   float64
	numAtoms  int
	repeats   int

	save       bool
	exportPath string
	tolerance  float64
	live       bool
	workerList []int
	points     int
	bins       int
	rdfBins    int
	axis       int
	fromRun    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ljcell",
		Short:        "cell-list lennard-jones force evaluation",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			loadEnv(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ljcell", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wiring and timing details")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate forces, energy and virial",
		RunE:  runEval,
	}
	addSystemFlags(evalCmd)
	evalCmd.Flags().IntVar(&repeats, "repeats", 1, "evaluations of the configuration; energy drift is reported across them")
	evalCmd.Flags().BoolVar(&save, "save", false, "store the result under --data")
	evalCmd.Flags().StringVar(&exportPath, "export", "", "write the result as json to this path")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "compare the cell list against all-pairs evaluation",
		RunE:  runVerify,
	}
	addSystemFlags(verifyCmd)
	verifyCmd.Flags().Float64Var(&tolerance, "tol", 1e-9, "maximum force component deviation")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark force evaluation",
		RunE:  runBench,
	}
	addSystemFlags(benchCmd)
	benchCmd.Flags().IntVar(&repeats, "repeats", config.DefaultRepeats, "evaluations per worker count")
	benchCmd.Flags().BoolVar(&live, "live", false, "show a live progress view")
	benchCmd.Flags().IntSliceVar(&workerList, "worker-counts", nil, "worker counts to compare (default 1 and one per CPU)")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the shifted pair energy and force",
		RunE:  plotCurve,
	}
	curveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	curveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	curveCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "lennard-jones sigma")
	curveCmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "lennard-jones epsilon")
	curveCmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "cutoff radius")
	curveCmd.Flags().IntVar(&points, "points", 80, "samples along r")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file from defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&bins, "bins", 40, "force magnitude histogram bins")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "radial distribution and structure factor of a configuration",
		RunE:  analyzeSystem,
	}
	addSystemFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&rdfBins, "bins", 100, "g(r) shells")
	analyzeCmd.Flags().IntVar(&axis, "axis", 0, "box axis for S(k)")
	analyzeCmd.Flags().StringVar(&fromRun, "run", "", "analyze the positions of a stored run")

	rootCmd.AddCommand(evalCmd, verifyCmd, benchCmd, curveCmd, presetsCmd, initCmd, listCmd, showCmd, analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "lennard-jones sigma")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "lennard-jones epsilon")
	cmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "cutoff radius")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().BoolVar(&debug, "debug", false, "clamp and report zero-separation pairs")
	cmd.Flags().StringVar(&latticeID, "lattice", config.LatticeFCC, "initial configuration (fcc|random)")
	cmd.Flags().IntVar(&unitCells, "cells", config.DefaultUnitCells, "fcc unit cells per axis")
	cmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "number density")
	cmd.Flags().IntVar(&numAtoms, "atoms", 1000, "atom count (random lattice)")
}

// resolveConfig layers defaults, the preset, the config file and finally any
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "custom"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("sigma") {
		cfg.Potential.Sigma = sigma
	}
	if flags.Changed("epsilon") {
		cfg.Potential.Epsilon = epsilon
	}
	if flags.Changed("cutoff") {
		cfg.Potential.Cutoff = cutoff
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("lattice") {
		cfg.System.Lattice = latticeID
	}
	if flags.Changed("cells") {
		cfg.System.UnitCells = unitCells
	}
	if flags.Changed("density") {
		cfg.System.Density = density
	}
	if flags.Changed("atoms") {
		cfg.System.NumAtoms = numAtoms
	}
	if flags.Changed("repeats") {
		cfg.Repeats = repeats
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func setup(cmd *cobra.Command, opts ...potentials.Option) (*md.Evaluator, []dynamo.Vec3, *config.Config, string, error) {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, "", err
	}

	e, positions, err := md.FromConfig(cfg, opts...)
	if err != nil {
		return nil, nil, nil, "", err
	}

	lj := e.Potential()
	cellPairs, skipped := lj.CellPairs(e.Grid())
	slog.Debug("wired evaluator",
		"name", name,
		"atoms", len(positions),
		"box", e.Box().L,
		"dims", e.Grid().Dims(),
		"cell_pairs", cellPairs,
		"duplicate_offsets", skipped,
		"workers", lj.Workers(),
	)
	return e, positions, cfg, name, nil
}

func runEval(cmd *cobra.Command, args []string) error {
	timing := metrics.NewTiming()
	e, positions, cfg, name, err := setup(cmd, potentials.WithTiming(timing.Record))
	if err != nil {
		return err
	}

	e.AddMetric(metrics.NewMeanEnergy())
	e.AddMetric(metrics.NewPairRate())
	e.AddMetric(metrics.NewEnergyDrift())
	e.AddMetric(metrics.NewStability())

	n := 1
	if cmd.Flags().Changed("repeats") {
		n = cfg.Repeats
	}
	result, err := e.Run(context.Background(), positions, n)
	if err != nil {
		if result != nil {
			slog.Error("evaluation failed", "calls", e.Calls(), "stability", result.Metrics["stability"])
		}
		return err
	}
	sample := result.Samples[len(result.Samples)-1]
	logTiming(timing)

	lo, hi := e.Grid().Occupancy()
	fmt.Println(viz.Summary(name, []viz.Row{
		{Label: "atoms", Value: fmt.Sprintf("%d", sample.NumAtoms)},
		{Label: "box", Value: fmt.Sprintf("%.4g x %.4g x %.4g", e.Box().L[0], e.Box().L[1], e.Box().L[2])},
		{Label: "cells", Value: fmt.Sprintf("%v (%d-%d atoms)", e.Grid().Dims(), lo, hi)},
		{Label: "workers", Value: fmt.Sprintf("%d", e.Potential().Workers())},
		{Label: "energy", Value: fmt.Sprintf("%.8f", sample.PotentialEnergy)},
		{Label: "energy/atom", Value: fmt.Sprintf("%.8f", result.Metrics["energy_per_atom"])},
		{Label: "virial", Value: fmt.Sprintf("%.8f", sample.PressureVirial)},
		{Label: "pairs", Value: fmt.Sprintf("%d", sample.Pairs)},
		{Label: "elapsed", Value: sample.Elapsed.String()},
		{Label: "evaluations", Value: fmt.Sprintf("%d", len(result.Samples))},
		{Label: "energy drift", Value: fmt.Sprintf("%.3g", result.Metrics["energy_drift"])},
		{Label: "stability", Value: fmt.Sprintf("%.3f", result.Metrics["stability"])},
	}))

	meta := runMetadata(name, cfg, e, sample, result.Metrics)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, positions, result.Forces)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if exportPath != "" {
		if err := storage.ExportJSON(exportPath, meta, positions, result.Forces); err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", exportPath)
	}
	return nil
}

func runMetadata(name string, cfg *config.Config, e *md.Evaluator, sample dynamo.Sample, m map[string]float64) storage.RunMetadata {
	return storage.RunMetadata{
		Name: name,
		Seed: cfg.Seed,
		Potential: storage.PotentialParams{
			Sigma:   cfg.Potential.Sigma,
			Epsilon: cfg.Potential.Epsilon,
			Cutoff:  cfg.Potential.Cutoff,
		},
		Box:             e.Box().L,
		Dims:            e.Grid().Dims(),
		Workers:         e.Potential().Workers(),
		PotentialEnergy: sample.PotentialEnergy,
		PressureVirial:  sample.PressureVirial,
		Pairs:           sample.Pairs,
		Elapsed:         sample.Elapsed,
		Metrics:         m,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	e, positions, _, name, err := setup(cmd)
	if err != nil {
		return err
	}

	d, err := e.Verify(positions)
	if err != nil {
		return err
	}

	fmt.Printf("verifying %s (%d atoms, %d interacting pairs)\n\n", name, len(positions), d.Interacting)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "QUANTITY\tDEVIATION")
	fmt.Fprintf(w, "max |dF|\t%.3e\n", d.MaxForce)
	fmt.Fprintf(w, "rms dF\t%.3e\n", d.RMSForce)
	fmt.Fprintf(w, "|sum F|\t%.3e\n", d.NetForce)
	fmt.Fprintf(w, "energy (rel)\t%.3e\n", d.Energy)
	fmt.Fprintf(w, "virial (rel)\t%.3e\n", d.Virial)
	if err := w.Flush(); err != nil {
		return err
	}

	if !d.Within(tolerance, tolerance) {
		return fmt.Errorf("cell list disagrees with direct evaluation beyond %g", tolerance)
	}
	fmt.Println("\nok")
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if live {
		e, positions, err := md.FromConfig(cfg)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s  %d atoms  %d workers", name, len(positions), e.Potential().Workers())
		samples, err := viz.RunBench(title, cfg.Repeats, func() (dynamo.Sample, error) {
			s, _, err := e.Evaluate(positions)
			return s, err
		})
		if err != nil {
			return err
		}
		fmt.Printf("%d evaluations\n", len(samples))
		return nil
	}

	counts := workerList
	if len(counts) == 0 && cmd.Flags().Changed("workers") {
		counts = []int{cfg.Workers}
	}
	if len(counts) == 0 {
		counts = []int{1, dynamo.DefaultWorkers()}
		if counts[1] == 1 {
			counts = counts[:1]
		}
	}

	fmt.Printf("benchmarking %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tATOMS\tCELLS\tPAIRS/CALL\tMEAN\tMIN\tPAIRS/SEC\tDRIFT")

	for _, n := range counts {
		c := *cfg
		c.Workers = n

		timing := metrics.NewTiming()
		e, positions, err := md.FromConfig(&c, potentials.WithTiming(timing.Record))
		if err != nil {
			return err
		}
		rate := metrics.NewPairRate()
		drift := metrics.NewEnergyDrift()
		e.AddMetric(rate)
		e.AddMetric(drift)

		result, err := e.Run(context.Background(), positions, c.Repeats)
		if err != nil {
			return err
		}

		section := timing.Sections()[0]
		fmt.Fprintf(w, "%d\t%d\t%v\t%d\t%v\t%v\t%.3g\t%.3g\n",
			e.Potential().Workers(),
			len(positions),
			e.Grid().Dims(),
			result.Samples[0].Pairs,
			section.Mean(),
			section.Min,
			rate.Value(),
			drift.Value(),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	usage, err := metrics.SampleProcess()
	if err != nil {
		slog.Warn("process stats unavailable", "err", err)
		return nil
	}
	fmt.Printf("\nprocess: cpu %.0f%%  rss %.1f MiB  threads %d\n",
		usage.CPUPercent, float64(usage.RSS)/(1<<20), usage.Threads)
	return nil
}

func plotCurve(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("sigma") {
		cfg.Potential.Sigma = sigma
	}
	if cmd.Flags().Changed("epsilon") {
		cfg.Potential.Epsilon = epsilon
	}
	if cmd.Flags().Changed("cutoff") {
		cfg.Potential.Cutoff = cutoff
	}

	p := cfg.Potential
	lj, err := potentials.NewLennardJones(p.Sigma, p.Epsilon, p.Cutoff)
	if err != nil {
		return err
	}
	if points < 2 {
		return fmt.Errorf("need at least 2 points, got %d", points)
	}

	// Start just inside the repulsive wall so it does not swamp the plot.
	rMin := 0.95 * p.Sigma
	rMax := 1.1 * p.Cutoff
	energy := make([]float64, points)
	force := make([]float64, points)
	for i := range energy {
		r := rMin + (rMax-rMin)*float64(i)/float64(points-1)
		dr2 := r * r
		energy[i] = lj.PairEnergy(dr2)
		force[i] = -lj.PairForceFactor(dr2) * r
	}

	fmt.Printf("sigma=%g epsilon=%g cutoff=%g  u(rc)=%.6g\n\n", p.Sigma, p.Epsilon, p.Cutoff, lj.PotentialEnergyAtCutoff())
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("shifted energy, r = %.3g .. %.3g", rMin, rMax)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(force,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("force along r (positive = repulsive)"),
	))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLATTICE\tSIZE\tDENSITY\tCUTOFF")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		s := cfg.System
		size := fmt.Sprintf("%d atoms", s.NumAtoms)
		if s.Lattice == config.LatticeFCC {
			size = fmt.Sprintf("%d^3 cells", s.UnitCells)
		}
		dens := fmt.Sprintf("%g", s.Density)
		if s.HasBox() {
			dens = fmt.Sprintf("box %v", s.Box)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\n", name, s.Lattice, size, dens, cfg.Potential.Cutoff)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tATOMS\tCUTOFF\tWORKERS\tENERGY/ATOM\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%d\t%.6f\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumAtoms,
			run.Potential.Cutoff,
			run.Workers,
			run.PotentialEnergy/float64(max(run.NumAtoms, 1)),
			run.Elapsed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, forces, err := st.LoadForces(runID)
	if err != nil {
		return err
	}
	if len(forces) == 0 {
		return fmt.Errorf("no forces stored for %s", runID)
	}

	fmt.Println(viz.Summary(meta.ID, []viz.Row{
		{Label: "time", Value: meta.Timestamp.Format("2006-01-02 15:04:05")},
		{Label: "potential", Value: fmt.Sprintf("sigma=%g epsilon=%g rc=%g", meta.Potential.Sigma, meta.Potential.Epsilon, meta.Potential.Cutoff)},
		{Label: "atoms", Value: fmt.Sprintf("%d", meta.NumAtoms)},
		{Label: "cells", Value: fmt.Sprintf("%v", meta.Dims)},
		{Label: "energy", Value: fmt.Sprintf("%.8f", meta.PotentialEnergy)},
		{Label: "virial", Value: fmt.Sprintf("%.8f", meta.PressureVirial)},
		{Label: "pairs", Value: fmt.Sprintf("%d", meta.Pairs)},
	}))
	fmt.Println(viz.Separator(80))

	hist, top := forceHistogram(forces, bins)
	fmt.Println(asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("atoms per |F| bin, 0 .. %.3g", top)),
	))
	return nil
}

func forceHistogram(forces []dynamo.Vec3, n int) ([]float64, float64) {
	n = max(n, 1)
	top := 0.0
	for _, f := range forces {
		top = math.Max(top, f.Norm())
	}
	hist := make([]float64, n)
	if top == 0 {
		hist[0] = float64(len(forces))
		return hist, top
	}
	for _, f := range forces {
		bin := min(int(f.Norm()/top*float64(n)), n-1)
		hist[bin]++
	}
	return hist, top
}

func logTiming(t *metrics.Timing) {
	for _, s := range t.Sections() {
		slog.Debug("timing", "section", s.Name, "calls", s.Calls, "mean", s.Mean(), "min", s.Min, "max", s.Max)
	}
}

func analyzeSystem(cmd *cobra.Command, args []string) error {
	var positions []dynamo.Vec3
	var box dynamo.Box

	if fromRun != "" {
		st := storage.New(dataDir)
		meta, err := st.Load(fromRun)
		if err != nil {
			return err
		}
		if positions, _, err = st.LoadForces(fromRun); err != nil {
			return err
		}
		if box, err = dynamo.NewBox(meta.Box[0], meta.Box[1], meta.Box[2]); err != nil {
			return err
		}
	} else {
		cfg, _, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if positions, box, err = md.System(cfg); err != nil {
			return err
		}
	}

	r, g, err := analysis.RDF(box, positions, box.ShortestEdge()/2, rdfBins)
	if err != nil {
		return err
	}
	k, s, err := analysis.StructureFactor(box, positions, axis, 128)
	if err != nil {
		return err
	}

	fmt.Printf("%d atoms, box %v\n", len(positions), box.L)
	if period, ok := shellPeriod(r, g); ok {
		fmt.Printf("g(r) shell spacing %.4g\n", period)
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(g,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("g(r), r = %.3g .. %.3g", r[0], r[len(r)-1])),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(s[1:],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("S(k) along axis %d, k = %.3g .. %.3g", axis, k[1], k[len(k)-1])),
	))
	return nil
}

// shellPeriod is the dominant oscillation wavelength of g(r)-1, taken from
// its power spectrum. It approximates the spacing of coordination shells.
func shellPeriod(r, g []float64) (float64, bool) {
	if len(g) < 4 {
		return 0, false
	}
	h := make([]float64, len(g))
	for i, v := range g {
		h[i] = v - 1
	}
	ps := analysis.PowerSpectrum(h)

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if ps[peak] == 0 {
		return 0, false
	}
	dr := r[1] - r[0]
	return dr * float64(len(g)) / float64(peak), true
}

// loadEnv reads a .env file from the working directory if present. LJCELL_DATA
// sets the data directory when --data is not given.
func loadEnv(cmd *cobra.Command) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring .env", "err", err)
	}
	if dir := os.Getenv("LJCELL_DATA"); dir != "" && !cmd.Flags().Changed("data") {
		dataDir = dir
		slog.Debug("data directory from environment", "dir", dir)
	}
}
