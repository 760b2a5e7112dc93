package binpack

import "fmt"

// Solution maps every item (by position in Instance.Items) to a 1-based bin
// index. The number of bins in use is max(solution), not a fixed parameter.
type Solution []int

func (s Solution) Clone() Solution {
	if s == nil {
		return nil
	}
	out := make(Solution, len(s))
	copy(out, s)
	return out
}

// NumBins returns K = max bin index (0 for an empty solution).
func (s Solution) NumBins() int {
	k := 0
	for _, b := range s {
		if b > k {
			k = b
		}
	}
	return k
}

func (s Solution) Validate(n int) error {
	if len(s) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidSolution, n, len(s))
	}
	for i, b := range s {
		if b < 1 {
			return fmt.Errorf("%w: solution[%d]=%d must be >= 1", ErrInvalidSolution, i, b)
		}
	}
	return nil
}

// Loads returns per-bin load; loads[b-1] belongs to bin b.
func (s Solution) Loads(inst *Instance) []float64 {
	loads := make([]float64, s.NumBins())
	for i, b := range s {
		loads[b-1] += inst.Items[i].Size
	}
	return loads
}

// Members returns item indices per bin in item order; members[b-1] belongs to bin b.
func (s Solution) Members() [][]int {
	members := make([][]int, s.NumBins())
	for i, b := range s {
		members[b-1] = append(members[b-1], i)
	}
	return members
}
