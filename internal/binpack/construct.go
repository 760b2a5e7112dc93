package binpack

import "math/rand"

// RandomGreedyFit builds the shared starting solution: items are drawn in
// uniformly random order and appended to the open bin while they fit; an item
// that does not fit closes the bin and starts a new one. No bin exceeds the
// capacity unless a single item is larger than the capacity on its own.
func RandomGreedyFit(inst *Instance, rng *rand.Rand) Solution {
	n := inst.Len()
	sol := make(Solution, n)
	if n == 0 {
		return sol
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	bin := 1
	space := inst.Capacity
	empty := true
	for len(remaining) > 0 {
		j := rng.Intn(len(remaining))
		item := remaining[j]
		remaining[j] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		size := inst.Items[item].Size
		if size > space && !empty {
			bin++
			space = inst.Capacity
		}
		sol[item] = bin
		space -= size
		empty = false
	}
	return sol
}

// RandomAssignment draws every gene uniformly from [1, maxBin].
func RandomAssignment(n, maxBin int, rng *rand.Rand) Solution {
	if maxBin < 1 {
		maxBin = 1
	}
	sol := make(Solution, n)
	for i := range sol {
		sol[i] = 1 + rng.Intn(maxBin)
	}
	return sol
}
