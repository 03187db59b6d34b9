package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/diet"
	"github.com/fdg312/diet-hub/internal/lp"
	"github.com/fdg312/diet-hub/internal/report"
)

var errNotOptimal = errors.New("no optimal diet")

type solveOptions struct {
	require  map[string]string
	max      map[string]string
	maxAll   float64
	exclude  []string
	engine   string
	format   string
	out      string
	defaults bool
}

func newSolveCmd(a *app) *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute the cheapest diet meeting the requirement",
		Example: `  diet solve
  diet solve --require protein=20 --require energy=500
  diet solve --max Egg=1.5 --exclude Chicken --format csv --out diet.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringToStringVar(&opts.require, "require", nil, "nutrient minimum as nutrient=amount; replaces the default requirement when given")
	f.BoolVar(&opts.defaults, "with-defaults", false, "merge --require into the default requirement instead of replacing it")
	f.StringToStringVar(&opts.max, "max", nil, "upper bound in portions as food=amount")
	f.Float64Var(&opts.maxAll, "max-all", a.cfg.Diet.MaxBound, "upper bound for foods without --max")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "foods to leave out")
	f.StringVar(&opts.engine, "engine", a.cfg.Diet.Engine, "LP engine: "+strings.Join(lp.EngineNames(), "|"))
	f.StringVarP(&opts.format, "format", "f", "text", "output format: text|csv|json|pdf")
	f.StringVarP(&opts.out, "out", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func runSolve(cmd *cobra.Command, a *app, opts *solveOptions) error {
	ctx := cmd.Context()

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == report.FormatPDF && opts.out == "" {
		return fmt.Errorf("--format pdf needs --out")
	}

	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	req, err := buildRequirement(opts.require, opts.defaults)
	if err != nil {
		return err
	}
	bounds, err := buildBounds(cat, opts.maxAll, opts.max, opts.exclude)
	if err != nil {
		return err
	}

	engine, err := lp.NewEngine(opts.engine)
	if err != nil {
		return err
	}
	solver := diet.NewSolver(cat,
		diet.WithEngine(engine),
		diet.WithTolerance(a.cfg.Diet.Tolerance),
		diet.WithZeroEpsilon(a.cfg.Diet.ZeroEpsilon),
		diet.WithLogger(log.Default()),
	)

	sol, err := solver.Solve(ctx, req, bounds)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	if err := report.Render(w, format, sol, req); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if opts.out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s report to %s\n", format, opts.out)
	}

	if !sol.IsOptimal() {
		return errNotOptimal
	}
	return nil
}

// buildRequirement parses nutrient=amount pairs. With no pairs the default
// requirement is used.
func buildRequirement(pairs map[string]string, mergeDefaults bool) (diet.Requirement, error) {
	if len(pairs) == 0 {
		return diet.DefaultRequirement(), nil
	}

	req := diet.Requirement{}
	if mergeDefaults {
		req = diet.DefaultRequirement()
	}
	for k, raw := range pairs {
		v, err := parseAmount(k, raw)
		if err != nil {
			return nil, err
		}
		req[catalog.Nutrient(strings.TrimSpace(k))] = v
	}
	return req, nil
}

// buildBounds gives every food maxAll, applies per-food overrides, then
// zeroes the excluded foods.
func buildBounds(cat *catalog.Catalog, maxAll float64, overrides map[string]string, exclude []string) (diet.Bounds, error) {
	bounds := diet.UniformBounds(cat, maxAll)
	for k, raw := range overrides {
		v, err := parseAmount(k, raw)
		if err != nil {
			return nil, err
		}
		bounds[strings.TrimSpace(k)] = v
	}
	return diet.Exclude(cat, bounds, exclude...)
}

func parseAmount(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount for %q: %q", key, raw)
	}
	return v, nil
}
