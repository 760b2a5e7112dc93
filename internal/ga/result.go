package ga

import (
	"binPack/internal/binpack"
	"binPack/internal/opt"
)

func ToOptResult(best binpack.Solution, bestCost binpack.Cost, trace opt.Trace, evals, gens int, meta map[string]any) opt.Result {
	return opt.Result{
		Solution:    best.Clone(),
		Cost:        bestCost,
		Trace:       trace,
		Evaluations: evals,
		Iterations:  gens,
		Meta:        meta,
	}
}
