package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"binPack/internal/binpack"
	"binPack/internal/opt"
	"binPack/internal/rng"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

// Case describes one random instance family.
type Case struct {
	Items        int
	Capacity     float64
	MinSize      float64
	MaxSize      float64
	InstanceSeed int64
}

type Record struct {
	Algo     string
	Items    int
	Capacity float64
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	CostBest float64
	CostMean float64
	CostStd  float64

	BinsBest int
	BinsMean float64

	// Прогоны, в которых осталось переполнение
	Overflowing int
	// Прогоны, прерванные таймаутом
	TimedOut int
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
	Log           *zap.Logger
	// OnResult вызывается после каждого успешного прогона
	OnResult func(algo string, seed int64, res opt.Result)
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("%w: Runs должно быть > 0 (получено %d)", opt.ErrConfiguration, r.Runs)
	}
	if c.Capacity <= 0 || c.MinSize <= 0 || c.MaxSize < c.MinSize {
		return Record{}, fmt.Errorf("%w: некорректный случай (capacity=%g size=[%g, %g])",
			opt.ErrConfiguration, c.Capacity, c.MinSize, c.MaxSize)
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("algo", algo.Name), zap.Int("items", c.Items))

	inst := binpack.RandomInstance(c.Items, c.Capacity, c.MinSize, c.MaxSize, rng.New(c.InstanceSeed))

	costs := make([]float64, 0, r.Runs)
	bins := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	rec := Record{Algo: algo.Name, Items: c.Items, Capacity: c.Capacity, Runs: r.Runs}

	for i := 0; i < r.Runs; i++ {
		// Сид прогона выводится из базового, чтобы соседние прогоны не коррелировали
		runSeed := rng.DeriveSeed(r.BaseSeed, uint64(i))

		op, err := algo.Factory(runSeed)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: build optimizer: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		switch {
		case err != nil && ctx.Err() != nil:
			return Record{}, fmt.Errorf("run %d: cancelled: %w", i, err)
		case err != nil && errors.Is(err, context.DeadlineExceeded):
			// Таймаут прогона: берём лучшее найденное решение
			rec.TimedOut++
			log.Warn("run timed out", zap.Int("run", i), zap.Duration("timeout", r.PerRunTimeout))
		case err != nil:
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if err := res.Solution.Validate(inst.Len()); err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		if res.Cost.Overflow > 0 {
			rec.Overflowing++
		}
		costs = append(costs, res.Cost.Value)
		bins = append(bins, float64(res.Cost.Bins))
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)

		log.Debug("run finished",
			zap.Int("run", i),
			zap.Int64("seed", runSeed),
			zap.Float64("cost", res.Cost.Value),
			zap.Int("bins", res.Cost.Bins),
			zap.String("stopped", res.Stopped),
			zap.Duration("took", dur),
		)
		if r.OnResult != nil {
			r.OnResult(algo.Name, runSeed, res)
		}
	}

	cs := CalcStats(costs)
	bs := CalcStats(bins)
	ts := CalcStats(timesMs)

	rec.TimeBestMs, rec.TimeMeanMs, rec.TimeStdMs = ts.Best, ts.Mean, ts.Std
	rec.CostBest, rec.CostMean, rec.CostStd = cs.Best, cs.Mean, cs.Std
	rec.BinsBest, rec.BinsMean = int(bs.Best), bs.Mean

	log.Info("case finished",
		zap.Int("runs", r.Runs),
		zap.Float64("cost_best", rec.CostBest),
		zap.Float64("cost_mean", rec.CostMean),
		zap.Float64("time_mean_ms", rec.TimeMeanMs),
	)
	return rec, nil
}
