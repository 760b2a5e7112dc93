package binpack

import (
	"fmt"
	"math/rand"
)

// ApplySwap returns a copy of sol with the bin assignments of s.ItemA and
// s.ItemB exchanged. Capacity is not checked.
func ApplySwap(sol Solution, s Swap) Solution {
	out := sol.Clone()
	out[s.ItemA], out[s.ItemB] = sol[s.ItemB], sol[s.ItemA]
	return out
}

// Mutate reassigns every gene with probability rate to a uniform bin in
// [1, K+1], where K is the current bin count, so at most one new bin opens.
// sol is not modified.
func Mutate(sol Solution, rate float64, rng *rand.Rand) Solution {
	out := sol.Clone()
	if len(out) == 0 {
		return out
	}
	kMax := sol.NumBins()
	for i := range out {
		if rng.Float64() < rate {
			out[i] = 1 + rng.Intn(kMax+1)
		}
	}
	return out
}

// Crossover is a one-point crossover: the child takes a[:cut] and b[cut:]
// with cut uniform in [1, n-1]. For n < 2 it returns a copy of a.
func Crossover(a, b Solution, rng *rand.Rand) (Solution, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: crossover of %d and %d genes", ErrLengthMismatch, len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return a.Clone(), nil
	}
	cut := 1 + rng.Intn(n-1)
	child := make(Solution, n)
	copy(child, a[:cut])
	copy(child[cut:], b[cut:])
	return child, nil
}

// Repair relocates items out of overflowing bins. While a bin is over
// capacity and holds more than one item, its largest item is evicted (the
// bin load is recomputed after each eviction) and moved to the first bin in
// index order with enough spare room, or to a new bin of its own. No item
// is ever dropped; a bin holding one oversized item stays overflowing.
func Repair(sol Solution, inst *Instance) Solution {
	out := sol.Clone()
	if len(out) == 0 {
		return out
	}
	members := out.Members()
	loads := out.Loads(inst)
	capacity := inst.Capacity

	// New bins are appended during the scan; each holds a single item and
	// therefore never enters the eviction loop.
	for b := 0; b < len(members); b++ {
		for loads[b] > capacity && len(members[b]) > 1 {
			pos := 0
			for j := 1; j < len(members[b]); j++ {
				if inst.Items[members[b][j]].Size > inst.Items[members[b][pos]].Size {
					pos = j
				}
			}
			item := members[b][pos]
			size := inst.Items[item].Size
			members[b] = append(members[b][:pos], members[b][pos+1:]...)
			loads[b] = 0
			for _, i := range members[b] {
				loads[b] += inst.Items[i].Size
			}

			target := -1
			for t := range members {
				if t != b && loads[t]+size <= capacity {
					target = t
					break
				}
			}
			if target < 0 {
				members = append(members, nil)
				loads = append(loads, 0)
				target = len(members) - 1
			}
			members[target] = append(members[target], item)
			loads[target] += size
			out[item] = target + 1
		}
	}
	return out
}
