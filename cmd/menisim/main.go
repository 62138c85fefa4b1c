package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	rho        float64
	gamma      float64
	thetaDeg   float64
	radius     float64
	gravity    float64
	samples    int
	integrator string
	tolerance  float64
	maxIter    int
	configFile string
	preset     string

	csvOut  string
	jsonOut string
	plotOut string
	saveRun bool
	quiet   bool
	output  string
	addr    string
	sizes   []int
	repeats int
	params  []string
	metric  string
	target  float64
	theme   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "menisim",
		Short:        "meniscus profile solver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(*config.DefaultConfig(), theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".menisim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve one meniscus profile",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}
	addParamFlags(solveCmd)
	solveCmd.Flags().StringVar(&csvOut, "csv", "", "write the profile as CSV (- for stdout)")
	solveCmd.Flags().StringVar(&jsonOut, "json", "", "write the profile with metadata as JSON (- for stdout)")
	solveCmd.Flags().StringVar(&plotOut, "plot", "", "save a plot image (.png, .svg)")
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "store the run under --data")
	solveCmd.Flags().BoolVar(&quiet, "quiet", false, "skip the terminal chart")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&output, "output", "o", "", "save an image instead of drawing in the terminal")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored profile to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-16s rho=%-8g gamma=%-7g theta=%-5g R=%-7g g=%g\n",
					name, p.Rho, p.Gamma, p.ThetaDeg, p.Radius, p.Gravity)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "solve over a grid of parameter values",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&params, "param", nil, "name=v1,v2,... or name=lo:hi:count (repeatable)")
	sweepCmd.Flags().StringVar(&metric, "metric", "rise", "metric to report")
	sweepCmd.Flags().Float64Var(&target, "target", 0, "pick the point whose metric is closest to this value")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integrators across grid sizes",
		Args:  cobra.NoArgs,
		RunE:  compareIntegrators,
	}
	addParamFlags(compareCmd)
	compareCmd.Flags().IntSliceVar(&sizes, "sizes", []int{10, 25, 50, 100, 200, 400}, "grid sizes")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the solver",
		Args:  cobra.NoArgs,
		RunE:  benchSolver,
	}
	addParamFlags(benchCmd)
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{50, 200, 1000, 5000}, "grid sizes")
	benchCmd.Flags().IntVar(&repeats, "repeat", 20, "solves per size")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the solver over a WebSocket",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive meniscus explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(*cfg, theme)
		},
	}
	addParamFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	rootCmd.AddCommand(solveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, sweepCmd, compareCmd, benchCmd, serveCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rho, "rho", 0, "liquid density (kg/m³)")
	cmd.Flags().Float64Var(&gamma, "gamma", 0, "surface tension (N/m)")
	cmd.Flags().Float64Var(&thetaDeg, "theta", 0, "contact angle (degrees)")
	cmd.Flags().Float64Var(&radius, "radius", 0, "cylinder radius (m)")
	cmd.Flags().Float64Var(&gravity, "g", 0, "gravitational acceleration (m/s²)")
	cmd.Flags().IntVar(&samples, "n", 0, "radial samples")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (rk4, euler)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "shooting step tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "shooting iteration cap")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml, ini)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, then a preset, then a config file, then
// explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Meniscus = *p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("rho") {
		cfg.Meniscus.Rho = rho
	}
	if flags.Changed("gamma") {
		cfg.Meniscus.Gamma = gamma
	}
	if flags.Changed("theta") {
		cfg.Meniscus.ThetaDeg = thetaDeg
	}
	if flags.Changed("radius") {
		cfg.Meniscus.Radius = radius
	}
	if flags.Changed("g") {
		cfg.Meniscus.Gravity = gravity
	}
	if flags.Changed("n") {
		cfg.Meniscus.N = samples
	}
	if flags.Changed("integrator") || cfg.Solver.Integrator == "" {
		cfg.Solver.Integrator = integrator
	}
	if flags.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}

	return cfg, nil
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	log.SetOutput(os.Stderr)
	return nil
}
