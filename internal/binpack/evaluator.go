package binpack

import "fmt"

const (
	PenaltyOverflow = 1000.0
	PenaltyBins     = 1.0
	RewardDensity   = 0.1
)

// Cost keeps the objective together with its sub-terms; comparisons use Value only.
type Cost struct {
	Value       float64
	Bins        int
	Overflow    float64
	FillSquares float64
}

func (c Cost) Less(other Cost) bool { return c.Value < other.Value }

func (c Cost) String() string {
	return fmt.Sprintf("cost=%.6f bins=%d overflow=%g fill²=%.6f", c.Value, c.Bins, c.Overflow, c.FillSquares)
}

// Evaluator reuses a load buffer between calls. It is not safe for
// concurrent use; give every goroutine its own.
type Evaluator struct {
	inst  *Instance
	loads []float64
	used  []bool
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

// Cost evaluates sol in O(items + bins). sol must hold len(Items) indices >= 1.
func (e *Evaluator) Cost(sol Solution) Cost {
	k := sol.NumBins()
	if k == 0 {
		return Cost{}
	}
	if cap(e.loads) < k {
		e.loads = make([]float64, k)
		e.used = make([]bool, k)
	}
	loads := e.loads[:k]
	used := e.used[:k]
	for b := range loads {
		loads[b] = 0
		used[b] = false
	}
	for i, b := range sol {
		loads[b-1] += e.inst.Items[i].Size
		used[b-1] = true
	}
	return costFromLoads(loads, used, k, e.inst.Capacity)
}

// Evaluate is the allocation-per-call form of Evaluator.Cost; it is pure and
// safe to call from several goroutines at once.
func Evaluate(inst *Instance, sol Solution) Cost {
	e := Evaluator{inst: inst}
	return e.Cost(sol)
}

func costFromLoads(loads []float64, used []bool, k int, capacity float64) Cost {
	var overflow, fill float64
	for b, load := range loads {
		if load > capacity {
			overflow += load - capacity
		}
		if used[b] {
			r := load / capacity
			fill += r * r
		}
	}
	return Cost{
		Value:       PenaltyOverflow*overflow + PenaltyBins*float64(k) - RewardDensity*fill,
		Bins:        k,
		Overflow:    overflow,
		FillSquares: fill,
	}
}

// WasteSquared is Σ(capacity − load)² over bins 1..K, a spread diagnostic
// that is not part of the objective.
func WasteSquared(inst *Instance, sol Solution) float64 {
	total := 0.0
	for _, load := range sol.Loads(inst) {
		w := inst.Capacity - load
		total += w * w
	}
	return total
}
