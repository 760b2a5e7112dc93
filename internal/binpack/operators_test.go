package binpack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binPack/internal/binpack"
)

func TestRandomGreedyFitIsFeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		inst := binpack.RandomInstance(1+rng.Intn(60), 100, 1, 100, rng)

		sol := binpack.RandomGreedyFit(inst, rng)

		require.NoError(t, sol.Validate(inst.Len()))
		c := binpack.Evaluate(inst, sol)
		require.Zero(t, c.Overflow, "round %d", round)
		for b, m := range sol.Members() {
			require.NotEmpty(t, m, "bin %d left empty", b+1)
		}
	}
}

func TestRandomGreedyFitIsolatesOversizedItems(t *testing.T) {
	inst, err := binpack.NewInstance(10, []binpack.Item{
		{ID: "a", Size: 3},
		{ID: "huge", Size: 25},
		{ID: "b", Size: 4},
		{ID: "big", Size: 12},
		{ID: "c", Size: 5},
	})
	require.NoError(t, err)

	for seed := int64(1); seed <= 20; seed++ {
		sol := binpack.RandomGreedyFit(inst, rand.New(rand.NewSource(seed)))

		members := sol.Members()
		assert.Len(t, members[sol[1]-1], 1)
		assert.Len(t, members[sol[3]-1], 1)
		assert.InDelta(t, 17.0, binpack.Evaluate(inst, sol).Overflow, 1e-12)
	}
}

func TestRandomGreedyFitEmptyInstance(t *testing.T) {
	inst, err := binpack.NewInstance(10, nil)
	require.NoError(t, err)

	sol := binpack.RandomGreedyFit(inst, rand.New(rand.NewSource(1)))
	assert.Empty(t, sol)
}

func TestApplySwapCopies(t *testing.T) {
	sol := binpack.Solution{1, 1, 2, 2}

	out := binpack.ApplySwap(sol, binpack.Swap{BinA: 1, BinB: 2, ItemA: 0, ItemB: 3})

	assert.Equal(t, binpack.Solution{2, 1, 2, 1}, out)
	assert.Equal(t, binpack.Solution{1, 1, 2, 2}, sol)
}

func TestMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	sol := binpack.Solution{1, 2, 3, 3, 2, 1}
	orig := sol.Clone()

	assert.Equal(t, sol, binpack.Mutate(sol, 0, rng))

	for i := 0; i < 100; i++ {
		out := binpack.Mutate(sol, 1, rng)
		require.Len(t, out, len(sol))
		for _, b := range out {
			require.GreaterOrEqual(t, b, 1)
			require.LessOrEqual(t, b, 4)
		}
	}
	assert.Equal(t, orig, sol)
}

func TestCrossoverPreservesLength(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a := binpack.Solution{1, 1, 1, 1, 1, 1}
	b := binpack.Solution{2, 2, 2, 2, 2, 2}

	for i := 0; i < 100; i++ {
		child, err := binpack.Crossover(a, b, rng)
		require.NoError(t, err)
		require.Len(t, child, len(a))

		// Cut lies in [1, n-1]: the child starts with A and ends with B.
		assert.Equal(t, 1, child[0])
		assert.Equal(t, 2, child[len(child)-1])
		cut := 0
		for cut < len(child) && child[cut] == 1 {
			cut++
		}
		for _, g := range child[cut:] {
			assert.Equal(t, 2, g)
		}
	}
}

func TestCrossoverShortParents(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	child, err := binpack.Crossover(binpack.Solution{3}, binpack.Solution{7}, rng)
	require.NoError(t, err)
	assert.Equal(t, binpack.Solution{3}, child)

	child, err = binpack.Crossover(binpack.Solution{}, binpack.Solution{}, rng)
	require.NoError(t, err)
	assert.Empty(t, child)
}

func TestCrossoverLengthMismatch(t *testing.T) {
	_, err := binpack.Crossover(binpack.Solution{1, 2}, binpack.Solution{1, 2, 3}, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, binpack.ErrLengthMismatch)
}

func TestRepairEvictsLargestIntoNewBin(t *testing.T) {
	inst, err := binpack.NewInstance(10, []binpack.Item{
		{ID: "a", Size: 6},
		{ID: "b", Size: 5},
		{ID: "c", Size: 4},
	})
	require.NoError(t, err)

	out := binpack.Repair(binpack.Solution{1, 1, 1}, inst)

	assert.Equal(t, binpack.Solution{2, 1, 1}, out)
	assert.Zero(t, binpack.Evaluate(inst, out).Overflow)
}

func TestRepairPrefersFirstFittingBin(t *testing.T) {
	inst, err := binpack.NewInstance(10, []binpack.Item{
		{ID: "a", Size: 5},
		{ID: "b", Size: 5},
		{ID: "c", Size: 3},
		{ID: "d", Size: 2},
	})
	require.NoError(t, err)

	// Bin 1 holds 13; of the two size-5 items the first is evicted and fits in bin 2.
	out := binpack.Repair(binpack.Solution{1, 1, 1, 2}, inst)

	assert.Equal(t, binpack.Solution{2, 1, 1, 2}, out)
}

func TestRepairKeepsLoneOversizedItem(t *testing.T) {
	inst, err := binpack.NewInstance(5, []binpack.Item{
		{ID: "x", Size: 8},
		{ID: "y", Size: 2},
	})
	require.NoError(t, err)

	out := binpack.Repair(binpack.Solution{1, 1}, inst)

	assert.Equal(t, binpack.Solution{2, 1}, out)
	assert.InDelta(t, 3.0, binpack.Evaluate(inst, out).Overflow, 1e-12)
}

func TestRepairNeverDropsItems(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for round := 0; round < 100; round++ {
		inst := binpack.RandomInstance(1+rng.Intn(40), 50, 1, 70, rng)
		sol := binpack.RandomAssignment(inst.Len(), 1+rng.Intn(5), rng)
		orig := sol.Clone()

		out := binpack.Repair(sol, inst)

		require.NoError(t, out.Validate(inst.Len()))
		require.Equal(t, orig, sol)
		for b, load := range out.Loads(inst) {
			if load > inst.Capacity {
				require.Len(t, out.Members()[b], 1, "round %d bin %d", round, b+1)
			}
		}
	}
}
