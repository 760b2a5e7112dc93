package sa

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"binPack/internal/binpack"
	"binPack/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg     Config
	Rng     *rand.Rand
	Observe opt.Observer
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

func (s *Solver) Solve(ctx context.Context, inst *binpack.Instance) (opt.Result, error) {
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	return s.SolveFrom(ctx, inst, binpack.RandomGreedyFit(inst, s.Rng))
}

// SolveFrom - реализация эвристики. Энергия считается локально по
// контейнеру A (изменение его незанятого объёма), а результатом служит
// лучшее по глобальной стоимости решение за весь прогон.
func (s *Solver) SolveFrom(ctx context.Context, inst *binpack.Instance, start binpack.Solution) (opt.Result, error) {
	begin := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	if err := start.Validate(inst.Len()); err != nil {
		return opt.Result{}, err
	}

	eval, err := binpack.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	p := binpack.NewPacking(inst, start)
	capacity := inst.Capacity

	T0 := s.Cfg.InitialTemp
	if T0 <= 0 {
		T0 = InitialTemperature(p)
	}
	T := T0

	best := p.Solution()
	bestCost := eval.Cost(p.Assignment())
	evals := 1

	rec := opt.NewRecorder(s.Observe)
	rec.Record(opt.TraceRecord{
		Iteration:   0,
		BestCost:    bestCost.Value,
		Event:       opt.EventStart,
		Cost:        bestCost.Value,
		Temperature: T,
	})

	// Диагностика застревания, на ход поиска не влияет
	lastCost := math.Inf(-1)
	sideways := 0
	stuck := 0

	accepted := 0
	iter := 0
	var reason string

	result := func(stopped string) opt.Result {
		return opt.Result{
			Solution:    best,
			Cost:        bestCost,
			Trace:       rec.Trace(),
			Evaluations: evals,
			Iterations:  iter,
			Duration:    time.Since(begin),
			Stopped:     stopped,
			Meta: map[string]any{
				"initial_temp": T0,
				"final_temp":   T,
				"alpha":        s.Cfg.Alpha,
				"accepted":     accepted,
				"stuck_count":  stuck,
			},
		}
	}

	for {
		if T <= s.Cfg.MinTemp {
			reason = opt.StopTemperature
			break
		}
		if iter >= s.Cfg.MaxIterations {
			reason = opt.StopIterations
			break
		}
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return result(opt.StopContext), err
		}

		// Глобальная стоимость текущего решения на каждой итерации
		cost := eval.Cost(p.Assignment())
		evals++
		if cost.Value < bestCost.Value {
			bestCost = cost
			best = p.Solution()
		}
		rec.Record(opt.TraceRecord{
			Iteration:   iter + 1,
			BestCost:    bestCost.Value,
			Event:       opt.EventIteration,
			Cost:        cost.Value,
			Temperature: T,
		})

		if cost.Value != lastCost {
			lastCost = cost.Value
			sideways = 0
		} else {
			sideways++
		}
		if sideways >= s.Cfg.SidewaysThreshold {
			stuck++
			sideways = 0
		}

		sw, err := p.SampleSwap(s.Rng)
		if errors.Is(err, binpack.ErrEmptyNeighborhood) {
			reason = opt.StopEmptyNeighborhood
			break
		}

		newA, _, fits := p.SwapLoads(sw)
		if fits {
			oldA := p.Load(sw.BinA)
			delta := (capacity - newA) - (capacity - oldA)

			accept := true
			if delta < 0 {
				// Критерий Метрополиса:
				// допускает принятие ухудшающих решений
				prob := AcceptanceProbability(delta, T)
				accept = s.Rng.Float64() < prob
				rec.Record(opt.TraceRecord{
					Iteration:   iter + 1,
					BestCost:    bestCost.Value,
					Event:       opt.EventCandidate,
					Delta:       delta,
					Probability: prob,
					Accepted:    accept,
					Temperature: T,
				})
			}
			if accept {
				p.Apply(sw)
				accepted++
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
		iter++
	}

	// Последний принятый ход ещё не оценён
	final := eval.Cost(p.Assignment())
	evals++
	if final.Value < bestCost.Value {
		bestCost = final
		best = p.Solution()
	}

	return result(reason), nil
}

// AcceptanceProbability - вероятность принять ход с изменением энергии delta
// при температуре T. Для delta >= 0 это ровно 1, для delta < 0 и T > 0
// значение лежит строго в (0, 1); при T <= 0 ухудшения не принимаются.
func AcceptanceProbability(delta, T float64) float64 {
	if delta >= 0 {
		return 1
	}
	if T <= 0 {
		return 0
	}
	p := math.Exp(delta / T)
	if p < math.SmallestNonzeroFloat64 {
		return math.SmallestNonzeroFloat64
	}
	if p >= 1 {
		return math.Nextafter(1, 0)
	}
	return p
}

// InitialTemperature - максимальный |ΔE| по обменам между соседними
// контейнерами (b, b+1) начального решения. Вместимость не проверяется.
func InitialTemperature(p *binpack.Packing) float64 {
	maxDelta := 0.0
	for b := 1; b < p.NumBins(); b++ {
		for _, i := range p.Bin(b) {
			for _, j := range p.Bin(b + 1) {
				// Незанятый объём A меняется на sizeI - sizeJ
				d := math.Abs(p.ItemSize(i) - p.ItemSize(j))
				if d > maxDelta {
					maxDelta = d
				}
			}
		}
	}
	return maxDelta
}
