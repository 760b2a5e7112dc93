package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binPack/internal/bench"
	"binPack/internal/metrics"
	"binPack/internal/opt"
)

type benchFlags struct {
	cases         string
	runs          int
	instanceSeed  int64
	minSize       float64
	maxSize       float64
	perRunTimeout bool
	out           string
}

func newBenchCmd(a *app) *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every selected algorithm over random instances with several seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := parseCases(f.cases, f.instanceSeed, f.minSize, f.maxSize)
			if err != nil {
				return err
			}
			runner := bench.Runner{
				Runs:     f.runs,
				BaseSeed: a.opts.Seed,
				Log:      a.log,
				OnResult: func(algo string, _ int64, res opt.Result) {
					metrics.ObserveResult(algo, res)
				},
			}
			if f.perRunTimeout {
				runner.PerRunTimeout = a.opts.Timeout
			}
			metrics.RegisterDefault()

			var records []bench.Record
			for _, c := range cases {
				for _, name := range a.opts.Algorithms {
					algo := bench.Algorithm{
						Name: name,
						Factory: func(seed int64) (opt.Optimizer, error) {
							return newOptimizer(name, a.opts, seed, metrics.TraceObserver(name))
						},
					}
					rec, err := runner.RunCase(cmd.Context(), c, algo)
					if err != nil {
						return fmt.Errorf("%s on %dx%g: %w", name, c.Items, c.Capacity, err)
					}
					records = append(records, rec)
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %4d items cap %g: cost best=%.3f mean=%.3f std=%.3f | bins best=%d mean=%.2f | time mean=%.2fms\n",
						rec.Algo, rec.Items, rec.Capacity, rec.CostBest, rec.CostMean, rec.CostStd,
						rec.BinsBest, rec.BinsMean, rec.TimeMeanMs)
				}
			}

			if err := bench.WriteCSV(f.out, records); err != nil {
				return err
			}
			a.log.Info("bench results written", zap.String("file", f.out), zap.Int("records", len(records)))
			if a.opts.MetricsFile != "" {
				return metrics.WriteTextfile(a.opts.MetricsFile)
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.cases, "cases", "50x100,100x100,200x150", "instances as items x capacity, comma-separated")
	fs.IntVar(&f.runs, "runs", 10, "runs per algorithm and case, each with its own seed")
	fs.Int64Var(&f.instanceSeed, "instance-seed", 777, "base seed for instance generation")
	fs.Float64Var(&f.minSize, "min-size", 1, "smallest item size")
	fs.Float64Var(&f.maxSize, "max-size", 0, "largest item size (0 = 70% of capacity)")
	fs.BoolVar(&f.perRunTimeout, "per-run-timeout", true, "apply --timeout to every run")
	fs.StringVar(&f.out, "out", "artifacts/results.csv", "CSV output path")
	return cmd
}

func parseCases(s string, baseInstanceSeed int64, minSize, maxSize float64) ([]bench.Case, error) {
	parts := splitCSV(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no cases given, example: 50x100")
	}
	cases := make([]bench.Case, 0, len(parts))
	for i, p := range parts {
		ic := strings.Split(p, "x")
		if len(ic) != 2 {
			return nil, fmt.Errorf("case %q is malformed, example: 50x100", p)
		}
		items, err := strconv.Atoi(strings.TrimSpace(ic[0]))
		if err != nil {
			return nil, fmt.Errorf("case %q: item count: %w", p, err)
		}
		capacity, err := strconv.ParseFloat(strings.TrimSpace(ic[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("case %q: capacity: %w", p, err)
		}
		if items <= 0 || capacity <= 0 {
			return nil, fmt.Errorf("case %q: items and capacity must be > 0", p)
		}

		hi := maxSize
		if hi <= 0 {
			hi = max(minSize, 0.7*capacity)
		}
		cases = append(cases, bench.Case{
			Items:        items,
			Capacity:     capacity,
			MinSize:      minSize,
			MaxSize:      hi,
			InstanceSeed: baseInstanceSeed + int64(i)*10_000 + int64(items)*100 + int64(capacity),
		})
	}
	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
