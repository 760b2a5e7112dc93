package ga

import (
	"math/rand"

	"github.com/sourcegraph/conc/pool"

	"binPack/internal/binpack"
)

// tournament выбирает size различных особей (частичная перестановка
// Фишера–Йетса по буферу индексов) и возвращает лучшую из них.
// При равной стоимости побеждает выбранная раньше.
func tournament(scores []binpack.Cost, size int, idx []int, rng *rand.Rand) int {
	n := len(idx)
	best := -1
	for i := 0; i < size; i++ {
		j := i + rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		cand := idx[i]
		if best < 0 || scores[cand].Value < scores[best].Value {
			best = cand
		}
	}
	return best
}

// rankElite возвращает индексы count лучших особей по возрастанию стоимости;
// при равенстве выигрывает меньший индекс.
func rankElite(scores []binpack.Cost, count int) []int {
	out := make([]int, 0, count)
	taken := make([]bool, len(scores))
	for len(out) < count {
		best := -1
		for i := range scores {
			if taken[i] {
				continue
			}
			if best < 0 || scores[i].Value < scores[best].Value {
				best = i
			}
		}
		taken[best] = true
		out = append(out, best)
	}
	return out
}

// evaluator оценивает популяцию. Оценка чистая, поэтому её можно
// распараллелить: каждая горутина пишет только в свой элемент scores.
type evaluator struct {
	inst    *binpack.Instance
	eval    *binpack.Evaluator
	workers int
}

func (e *evaluator) evaluate(pop []binpack.Solution, scores []binpack.Cost) {
	if e.workers <= 1 {
		for i, ind := range pop {
			scores[i] = e.eval.Cost(ind)
		}
		return
	}
	p := pool.New().WithMaxGoroutines(e.workers)
	for i, ind := range pop {
		p.Go(func() {
			scores[i] = binpack.Evaluate(e.inst, ind)
		})
	}
	p.Wait()
}
