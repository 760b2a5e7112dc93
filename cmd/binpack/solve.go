package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binPack/internal/binpack"
	"binPack/internal/loader"
	"binPack/internal/metrics"
	"binPack/internal/opt"
	"binPack/internal/store"
	"binPack/internal/telemetry"
)

func newSolveCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Run the selected algorithms on a problem file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.solve(cmd.Context(), cmd.OutOrStdout(), args[0], out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write results as YAML to this file")
	return cmd
}

func (a *app) solve(ctx context.Context, w io.Writer, path, out string) error {
	inst, err := loader.Load(path)
	if err != nil {
		return err
	}
	a.log.Info("problem loaded",
		zap.String("file", path),
		zap.Int("items", inst.Len()),
		zap.Float64("capacity", inst.Capacity),
		zap.Float64("total_size", inst.TotalSize()),
	)

	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	var pub *telemetry.RedisPublisher
	if a.opts.RedisURL != "" {
		pub, err = telemetry.NewRedisPublisher(a.opts.RedisURL, a.opts.RedisChannel, a.log)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer pub.Close()
	}

	metrics.RegisterDefault()

	runs := make([]loader.Run, 0, len(a.opts.Algorithms))
	for _, algo := range a.opts.Algorithms {
		runID := uuid.New().String()
		observe := telemetry.Fanout(
			telemetry.Progress(a.log, algo, a.opts.ProgressRate),
			metrics.TraceObserver(algo),
		)
		if pub != nil {
			observe = telemetry.Fanout(observe, pub.Observer(runID, algo))
		}

		res, err := a.runOne(ctx, algo, inst, observe)
		if err != nil {
			return fmt.Errorf("%s: %w", algo, err)
		}
		metrics.ObserveResult(algo, res)

		rec := store.NewRun(algo, path, a.opts.Seed, res)
		rec.ID = runID
		if _, err := st.SaveRun(ctx, rec); err != nil {
			return fmt.Errorf("save %s run: %w", algo, err)
		}

		a.log.Info("run finished",
			zap.String("algo", algo),
			zap.String("run_id", runID),
			zap.Float64("cost", res.Cost.Value),
			zap.Int("bins", res.Cost.Bins),
			zap.Float64("overflow", res.Cost.Overflow),
			zap.Int("evaluations", res.Evaluations),
			zap.String("stopped", res.Stopped),
			zap.Duration("took", res.Duration),
		)
		printReport(w, algo, inst, res)
		runs = append(runs, loader.Run{Algorithm: algo, Result: res})
	}

	if out != "" {
		if err := writeResults(out, inst, runs); err != nil {
			return err
		}
		a.log.Info("results written", zap.String("file", out))
	}
	if a.opts.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.opts.MetricsFile); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	return nil
}

// runOne applies the per-run timeout. A timed-out run keeps its best-so-far result.
func (a *app) runOne(ctx context.Context, algo string, inst *binpack.Instance, observe opt.Observer) (opt.Result, error) {
	op, err := newOptimizer(algo, a.opts, a.opts.Seed, observe)
	if err != nil {
		return opt.Result{}, err
	}
	runCtx := ctx
	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}
	res, err := op.Solve(runCtx, inst)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		a.log.Warn("run timed out", zap.String("algo", algo), zap.Duration("timeout", a.opts.Timeout))
		return res, nil
	}
	return res, err
}

func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.opts.DatabaseURL == "" {
		return store.NewMemory(), nil
	}
	pg, err := store.NewPostgres(a.opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, err
	}
	return pg, nil
}

func printReport(w io.Writer, algo string, inst *binpack.Instance, res opt.Result) {
	fmt.Fprintf(w, "== %s: %s | %s, %d evaluations, %s\n",
		algo, res.Cost, res.Stopped, res.Evaluations, res.Duration.Round(time.Microsecond))
	for _, b := range binpack.Report(inst, res.Solution) {
		ids := make([]string, len(b.Items))
		for i, it := range b.Items {
			ids[i] = it.ID
		}
		fmt.Fprintf(w, "  bin %d: [%s] load %g/%g remaining %g (%.1f%%)\n",
			b.Bin, strings.Join(ids, " "), b.Load, inst.Capacity, b.Remaining, 100*b.Efficiency)
	}
}

func writeResults(path string, inst *binpack.Instance, runs []loader.Run) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := loader.WriteResults(f, inst, runs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
