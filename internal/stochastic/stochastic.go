package stochastic

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"binPack/internal/binpack"
	"binPack/internal/opt"
	"binPack/internal/rng"
)

// Solver - стохастический подъём: окрестность перемешивается на каждом
// проходе, проход заканчивается на первом принятом обмене.
//
// Критерий принятия локальный: обмен принимается, если строго уменьшается
// незанятый объём контейнера A, а оба контейнера остаются в пределах
// вместимости. Глобальная стоимость считается только для трассы и для
// выбора лучшего найденного решения.
type Solver struct {
	Cfg     Config
	Rng     *rand.Rand
	Observe opt.Observer
}

// New возвращает новый солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

	curr := eval.Cost(p.Assignment())
	best := p.Solution()
	bestCost := curr

	rec := opt.NewRecorder(s.Observe)
	rec.Record(opt.TraceRecord{
		Iteration: 0,
		BestCost:  bestCost.Value,
		Event:     opt.EventStart,
		Cost:      curr.Value,
	})

	// Число проверенных кандидатов (вычислений локального критерия)
	candidates := 0
	accepted := 0
	passes := 0

	result := func(stopped string) opt.Result {
		return opt.Result{
			Solution:    best,
			Cost:        bestCost,
			Trace:       rec.Trace(),
			Evaluations: candidates,
			Iterations:  passes,
			Duration:    time.Since(begin),
			Stopped:     stopped,
			Meta: map[string]any{
				"accepted":   accepted,
				"final_cost": curr.Value,
			},
		}
	}

	for passes < s.Cfg.MaxPasses {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return result(opt.StopContext), err
		}
		if p.NumSwaps() == 0 {
			return result(opt.StopEmptyNeighborhood), nil
		}

		// Перемешанная окрестность; слоты остаются валидными до первого
		// принятого обмена, после которого проход завершается.
		swaps := slices.Collect(p.Swaps())
		rng.Shuffle(swaps, s.Rng)
		passes++

		improved := false
		evaluated := 0
		for _, sw := range swaps {
			if evaluated >= s.Cfg.MaxIterations {
				break
			}

			oldA := p.Load(sw.BinA)
			// Заполненный контейнер A улучшить нельзя
			if oldA >= capacity {
				continue
			}
			evaluated++
			candidates++

			newA, _, fits := p.SwapLoads(sw)
			if !fits || capacity-newA >= capacity-oldA {
				continue
			}

			p.Apply(sw)
			accepted++
			next := eval.Cost(p.Assignment())
			if next.Value < bestCost.Value {
				bestCost = next
				best = p.Solution()
			}
			rec.Record(opt.TraceRecord{
				Iteration: passes,
				BestCost:  bestCost.Value,
				Event:     opt.EventAccept,
				Cost:      next.Value,
				Delta:     next.Value - curr.Value,
				Accepted:  true,
			})
			curr = next
			improved = true
			break
		}

		if !improved {
			return result(opt.StopConverged), nil
		}
	}

	return result(opt.StopIterations), nil
}
