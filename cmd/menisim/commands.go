package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/san-kum/menisim/internal/config"
	"github.com/san-kum/menisim/internal/experiment"
	"github.com/san-kum/menisim/internal/export"
	"github.com/san-kum/menisim/internal/integrators"
	"github.com/san-kum/menisim/internal/meniscus"
	"github.com/san-kum/menisim/internal/server"
	"github.com/san-kum/menisim/internal/shooting"
	"github.com/san-kum/menisim/internal/storage"
	"github.com/san-kum/menisim/internal/sweep"
	"github.com/san-kum/menisim/internal/viz"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(*cfg).WithLogger(log.StandardLogger())
	if err := exp.Setup(nil); err != nil {
		return err
	}
	result, err := exp.Run()
	if err != nil {
		return err
	}
	prof := result.Profile

	log.WithFields(log.Fields{
		"integrator": cfg.Solver.Integrator,
		"n":          prof.Len(),
		"iterations": prof.Iterations,
		"z_min":      prof.ZMin,
		"elapsed":    result.Elapsed,
	}).Info("solved")

	var runID string
	if saveRun {
		st := storage.New(dataDir).WithLogger(log.StandardLogger())
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(*cfg, result); err != nil {
			return err
		}
		log.WithField("run", runID).Info("run stored")
	}

	if !quiet && csvOut != "-" && jsonOut != "-" {
		fmt.Println(viz.Chart(prof, 70, 12))
		fmt.Println()
		fmt.Print(viz.Summary(prof, result.Metrics))
		if runID != "" {
			fmt.Printf("\nrun id: %s\n", runID)
		}
	}

	if csvOut != "" {
		if err := withOutput(csvOut, func(w io.Writer) error {
			return export.WriteCSV(w, prof.R, prof.Z)
		}); err != nil {
			return err
		}
	}

	if jsonOut != "" {
		data := export.NewExportData(runID, cfg.Params(), cfg.Solver.Integrator, prof, result.Metrics)
		if err := withOutput(jsonOut, func(w io.Writer) error {
			return export.WriteJSON(w, data)
		}); err != nil {
			return err
		}
	}

	if plotOut != "" {
		title := fmt.Sprintf("meniscus θ=%g° R=%g m", cfg.Meniscus.ThetaDeg, cfg.Meniscus.Radius)
		if err := export.SavePlot(plotOut, title, prof.R, prof.Z); err != nil {
			return err
		}
		log.WithField("path", plotOut).Info("plot saved")
	}

	return nil
}

// withOutput runs write against stdout for "" or "-", otherwise against the named file.
func withOutput(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
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
	fmt.Fprintln(w, "ID\tTIME\tTHETA\tR\tN\tINTEG\tITERS\tZ_MIN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%s\t%d\t%.6g\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.ThetaDeg,
			run.Params.Radius,
			run.Params.N,
			run.Solver.Integrator,
			run.Iterations,
			run.ZMin,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *meniscus.Profile, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	r, z, err := st.LoadProfile(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(r) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	prof := &meniscus.Profile{
		R:               r,
		Z:               z,
		CapillaryLength: meta.Params.CapillaryLength(),
		ZMin:            meta.ZMin,
		UGoal:           meta.Params.TargetSlope(),
		Iterations:      meta.Iterations,
	}
	return meta, prof, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, prof, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if output != "" {
		title := fmt.Sprintf("%s θ=%g°", meta.ID, meta.Params.ThetaDeg)
		return export.SavePlot(output, title, prof.R, prof.Z)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("contact angle: %g°  radius: %g m\n", meta.Params.ThetaDeg, meta.Params.Radius)
	fmt.Printf("samples: %d\n\n", prof.Len())
	fmt.Println(viz.Chart(prof, 80, 15))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, prof, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return withOutput(output, func(w io.Writer) error {
		return export.WriteCSV(w, prof.R, prof.Z)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, prof, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data := export.NewExportData(meta.ID, meta.Params, meta.Solver.Integrator, prof, meta.Metrics)
	if output == "" || output == "-" {
		return export.WriteJSON(os.Stdout, data)
	}
	return export.ExportJSON(output, data)
}

// parseParam reads "name=v1,v2,..." or "name=lo:hi:count".
func parseParam(arg string) (string, []float64, error) {
	name, values, ok := strings.Cut(arg, "=")
	if !ok || name == "" || values == "" {
		return "", nil, fmt.Errorf("bad --param %q: want name=v1,v2 or name=lo:hi:count", arg)
	}

	if parts := strings.Split(values, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		count, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || count < 1 {
			return "", nil, fmt.Errorf("bad range in --param %q", arg)
		}
		return name, sweep.Linspace(lo, hi, count), nil
	}

	var out []float64
	for _, field := range strings.Split(values, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad value in --param %q: %w", arg, err)
		}
		out = append(out, v)
	}
	return name, out, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(params) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	var names []string
	var ranges [][]float64
	for _, arg := range params {
		name, values, err := parseParam(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	s := sweep.New(names, ranges)
	s.Logger = log.StandardLogger()

	start := time.Now()
	points, err := s.Run(*cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\tITERS\t"+strings.ToUpper(metric))
	for _, p := range points {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", p.Values[name])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "-\terror: %v\n", p.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%.6g\n", p.Iterations, p.Metrics[metric])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d points in %v\n", len(points), time.Since(start).Round(time.Millisecond))

	if cmd.Flags().Changed("target") {
		best, ok := sweep.Best(points, metric, target)
		if !ok {
			return fmt.Errorf("no successful point reports %q", metric)
		}
		fmt.Printf("closest to %s=%g:", metric, target)
		for _, name := range names {
			fmt.Printf(" %s=%g", name, best.Values[name])
		}
		fmt.Printf(" (%s=%.6g)\n", metric, best.Metrics[metric])
	}
	return nil
}

func solveWith(cfg config.Config) (*experiment.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(nil); err != nil {
		return nil, err
	}
	return exp.Run()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names := integrators.Names()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "N"
	for _, name := range names {
		header += "\t" + strings.ToUpper(name) + " Z_MIN\tITERS"
	}
	fmt.Fprintln(w, header)

	for _, n := range sizes {
		row := strconv.Itoa(n)
		for _, name := range names {
			c := *cfg
			c.Meniscus.N = n
			c.Solver.Integrator = name
			res, err := solveWith(c)
			if err != nil {
				log.WithError(err).WithFields(log.Fields{"n": n, "integrator": name}).Debug("compare solve failed")
				row += "\tfailed\t-"
				continue
			}
			row += fmt.Sprintf("\t%.10g\t%d", res.Profile.ZMin, res.Profile.Iterations)
		}
		fmt.Fprintln(w, row)
	}
	return w.Flush()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if repeats < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}
	if err := validateSizes(sizes); err != nil {
		return err
	}

	fmt.Printf("benchmarking %s solver (%d solves per size)...\n\n", cfg.Solver.Integrator, repeats)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tMEAN\tPER SAMPLE\tITERS")
	for _, n := range sizes {
		c := *cfg
		c.Meniscus.N = n

		var iters int
		start := time.Now()
		for i := 0; i < repeats; i++ {
			res, err := solveWith(c)
			if err != nil {
				return fmt.Errorf("n=%d: %w", n, err)
			}
			iters = res.Profile.Iterations
		}
		mean := time.Since(start) / time.Duration(repeats)
		fmt.Fprintf(w, "%d\t%v\t%v\t%d\n", n, mean, mean/time.Duration(n), iters)
	}
	return w.Flush()
}

// validateSizes keeps bench grids in the range the solver accepts unclamped.
func validateSizes(sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("--sizes needs at least one value")
	}
	for _, n := range sizes {
		if n < meniscus.MinSamples || n > meniscus.MaxSamples {
			return fmt.Errorf("--sizes value %d out of range [%d, %d]", n, meniscus.MinSamples, meniscus.MaxSamples)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	stepper, err := integrators.Get(integrator)
	if err != nil {
		return err
	}
	solver := shooting.New()
	solver.Stepper = stepper
	solver.Logger = log.StandardLogger()
	model := &meniscus.Model{Solver: solver}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(addr, log.StandardLogger()).WithSolver(model.Solve)
	return srv.Serve(ctx)
}
