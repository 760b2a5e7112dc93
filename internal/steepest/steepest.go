package steepest

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"binPack/internal/binpack"
	"binPack/internal/opt"
)

// ctxCheckEvery задаёт, как часто проверяется отмена внутри одного прохода.
const ctxCheckEvery = 256

// Solver - крутой подъём (steepest hill climbing) по окрестности обменов.
type Solver struct {
	Cfg     Config
	Rng     *rand.Rand
	Observe opt.Observer
}

// New возвращает новый солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Генератор нужен только для построения начального решения.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve стартует из случайного жадного размещения.
func (s *Solver) Solve(ctx context.Context, inst *binpack.Instance) (opt.Result, error) {
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	return s.SolveFrom(ctx, inst, binpack.RandomGreedyFit(inst, s.Rng))
}

// SolveFrom - основной цикл. Обмены перебираются в фиксированном порядке,
// обмен принимается, только если глобальная стоимость падает больше чем на Eps.
func (s *Solver) SolveFrom(ctx context.Context, inst *binpack.Instance, start binpack.Solution) (opt.Result, error) {
	begin := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := start.Validate(inst.Len()); err != nil {
		return opt.Result{}, err
	}

	eval, err := binpack.NewEvaluator(inst)
	if err != nil {
		return opt.Result{}, err
	}

	// Текущее решение хранится в виде упаковки: обмен применяется на месте
	// и откатывается повторным применением.
	p := binpack.NewPacking(inst, start)
	curr := eval.Cost(p.Assignment())
	evals := 1

	rec := opt.NewRecorder(s.Observe)
	rec.Record(opt.TraceRecord{
		Iteration: 0,
		BestCost:  curr.Value,
		Event:     opt.EventStart,
		Cost:      curr.Value,
	})

	accepted := 0
	passes := 0

	result := func(stopped string) opt.Result {
		sol := p.Solution()
		return opt.Result{
			Solution:    sol,
			Cost:        curr,
			Trace:       rec.Trace(),
			Evaluations: evals,
			Iterations:  passes,
			Duration:    time.Since(begin),
			Stopped:     stopped,
			Meta: map[string]any{
				"accepted":      accepted,
				"waste_squared": binpack.WasteSquared(inst, sol),
			},
		}
	}

	for passes < s.Cfg.MaxIterations {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return result(opt.StopContext), err
		}
		if p.NumSwaps() == 0 {
			return result(opt.StopEmptyNeighborhood), nil
		}

		improved := false
		scanned := 0
		for sw := range p.Swaps() {
			scanned++
			if scanned%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return result(opt.StopContext), err
				}
			}

			// Недопустимые по вместимости обмены не рассматриваются
			if _, _, fits := p.SwapLoads(sw); !fits {
				continue
			}

			p.Apply(sw)
			cand := eval.Cost(p.Assignment())
			evals++

			if cand.Value < curr.Value-s.Cfg.Eps {
				accepted++
				rec.Record(opt.TraceRecord{
					Iteration: passes + 1,
					BestCost:  cand.Value,
					Event:     opt.EventAccept,
					Cost:      cand.Value,
					Delta:     cand.Value - curr.Value,
					Accepted:  true,
				})
				curr = cand
				improved = true
				continue
			}

			// Откат
			p.Apply(sw)
		}
		passes++

		if !improved {
			return result(opt.StopConverged), nil
		}
	}

	return result(opt.StopIterations), nil
}
