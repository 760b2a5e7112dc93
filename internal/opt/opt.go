package opt

import (
	"context"
	"errors"
	"time"

	"binPack/internal/binpack"
)

// ErrConfiguration wraps every out-of-range tunable reported by Config.Validate.
var ErrConfiguration = errors.New("opt: invalid configuration")

type Optimizer interface {
	Solve(ctx context.Context, inst *binpack.Instance) (Result, error)
}

// Starter is implemented by strategies that can continue from a caller-supplied solution.
type Starter interface {
	SolveFrom(ctx context.Context, inst *binpack.Instance, start binpack.Solution) (Result, error)
}

// Stop reasons reported in Result.Stopped.
const (
	StopConverged         = "converged"
	StopIterations        = "iterations"
	StopTemperature       = "temperature"
	StopGenerations       = "generations"
	StopEmptyNeighborhood = "empty_neighborhood"
	StopContext           = "context"
)

type Result struct {
	Solution    binpack.Solution
	Cost        binpack.Cost
	Trace       Trace
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Stopped     string
	Meta        map[string]any
}
