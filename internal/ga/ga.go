package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"binPack/internal/binpack"
	"binPack/internal/opt"
)

// Solver - реализация генетического алгоритма для задачи упаковки в контейнеры.
type Solver struct {
	Cfg     Config
	Rng     *rand.Rand
	Observe opt.Observer
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve засевает популяцию случайным жадным размещением.
func (s *Solver) Solve(ctx context.Context, inst *binpack.Instance) (opt.Result, error) {
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", opt.ErrConfiguration)
	}
	return s.SolveFrom(ctx, inst, binpack.RandomGreedyFit(inst, s.Rng))
}

// SolveFrom - реализация эвристики; start занимает нулевую позицию начальной популяции.
func (s *Solver) SolveFrom(ctx context.Context, inst *binpack.Instance, start binpack.Solution) (opt.Result, error) {
	begin := time.Now()

	// Проверка корректности входных данных и конфигурации
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
	ev := &evaluator{inst: inst, eval: eval, workers: s.Cfg.Workers}

	n := inst.Len()
	popSize := s.Cfg.Population

	// Инициализация начальной популяции: затравка и случайные
	// назначения в диапазоне [1, K+2]
	pop := make([]binpack.Solution, popSize)
	pop[0] = start.Clone()
	maxBin := start.NumBins() + 2
	for i := 1; i < popSize; i++ {
		pop[i] = binpack.RandomAssignment(n, maxBin, s.Rng)
	}
	scores := make([]binpack.Cost, popSize)

	ev.evaluate(pop, scores)
	evaluations := popSize

	// Поиск лучшего решения в начальной популяции
	best := pop[0]
	bestCost := scores[0]
	for i := 1; i < popSize; i++ {
		if scores[i].Value < bestCost.Value {
			best, bestCost = pop[i], scores[i]
		}
	}
	improvements := 0

	rec := opt.NewRecorder(s.Observe)
	rec.Record(opt.TraceRecord{
		Iteration: 0,
		BestCost:  bestCost.Value,
		Event:     opt.EventStart,
		Cost:      bestCost.Value,
	})

	// Буфер индексов для турнира без возвращения
	idx := make([]int, popSize)
	for i := range idx {
		idx[i] = i
	}

	meta := func() map[string]any {
		return map[string]any{
			"population":   s.Cfg.Population,
			"generations":  s.Cfg.Generations,
			"elite":        s.Cfg.Elite,
			"improvements": improvements,
		}
	}

	for gen := 1; gen <= s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			m := meta()
			m["stopped"] = opt.StopContext
			res := ToOptResult(best, bestCost, rec.Trace(), evaluations, gen-1, m)
			res.Stopped = opt.StopContext
			res.Duration = time.Since(begin)
			return res, err
		}

		next := make([]binpack.Solution, 0, popSize)

		// Элитизм (переносим лучших особей без изменений)
		for _, e := range rankElite(scores, s.Cfg.Elite) {
			next = append(next, pop[e])
		}

		// Генерация остальных особей нового поколения
		for len(next) < popSize {
			// Турнирный отбор
			p1 := tournament(scores, s.Cfg.TournamentSize, idx, s.Rng)
			p2 := tournament(scores, s.Cfg.TournamentSize, idx, s.Rng)

			// Кроссовер
			child := pop[p1]
			if s.Cfg.CrossoverRate >= 1 || s.Rng.Float64() < s.Cfg.CrossoverRate {
				child, err = binpack.Crossover(pop[p1], pop[p2], s.Rng)
				if err != nil {
					return opt.Result{}, err
				}
			}

			// Мутация и восстановление допустимости
			child = binpack.Mutate(child, s.Cfg.MutationRate, s.Rng)
			child = binpack.Repair(child, inst)
			next = append(next, child)
		}

		// Смена поколений
		pop = next
		ev.evaluate(pop, scores)
		evaluations += popSize

		genBest := 0
		for i := 1; i < popSize; i++ {
			if scores[i].Value < scores[genBest].Value {
				genBest = i
			}
		}
		if scores[genBest].Value < bestCost.Value {
			best, bestCost = pop[genBest], scores[genBest]
			improvements++
		}

		rec.Record(opt.TraceRecord{
			Iteration: gen,
			BestCost:  bestCost.Value,
			Event:     opt.EventGeneration,
			Cost:      scores[genBest].Value,
		})
	}

	res := ToOptResult(best, bestCost, rec.Trace(), evaluations, s.Cfg.Generations, meta())
	res.Stopped = opt.StopGenerations
	res.Duration = time.Since(begin)
	return res, nil
}
