package binpack_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binPack/internal/binpack"
)

func scenarioInstance(t *testing.T) *binpack.Instance {
	t.Helper()
	inst, err := binpack.NewInstance(10, []binpack.Item{
		{ID: "A", Size: 4},
		{ID: "B", Size: 6},
		{ID: "C", Size: 5},
		{ID: "D", Size: 5},
	})
	require.NoError(t, err)
	return inst
}

func TestEvaluateTwoFullBins(t *testing.T) {
	inst := scenarioInstance(t)

	c := binpack.Evaluate(inst, binpack.Solution{1, 1, 2, 2})

	assert.Equal(t, 2, c.Bins)
	assert.Zero(t, c.Overflow)
	assert.InDelta(t, 2.0, c.FillSquares, 1e-12)
	assert.InDelta(t, 1.8, c.Value, 1e-12)
}

func TestEvaluateOversizedItem(t *testing.T) {
	inst, err := binpack.NewInstance(5, []binpack.Item{{ID: "X", Size: 8}})
	require.NoError(t, err)

	c := binpack.Evaluate(inst, binpack.Solution{1})

	assert.Equal(t, 1, c.Bins)
	assert.InDelta(t, 3.0, c.Overflow, 1e-12)
	assert.InDelta(t, 3000.744, c.Value, 1e-9)
}

func TestEvaluateEmptySolution(t *testing.T) {
	inst, err := binpack.NewInstance(5, nil)
	require.NoError(t, err)

	assert.Equal(t, binpack.Cost{}, binpack.Evaluate(inst, binpack.Solution{}))
}

func TestEvaluateGapBinCountsTowardK(t *testing.T) {
	inst := scenarioInstance(t)

	// Bin 2 is empty: it adds to K but not to the fill term.
	c := binpack.Evaluate(inst, binpack.Solution{1, 1, 3, 3})

	assert.Equal(t, 3, c.Bins)
	assert.InDelta(t, 2.0, c.FillSquares, 1e-12)
	assert.InDelta(t, 2.8, c.Value, 1e-12)
}

func TestEvaluatorReuseMatchesEvaluate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inst := binpack.RandomInstance(40, 100, 5, 60, rng)
	e, err := binpack.NewEvaluator(inst)
	require.NoError(t, err)

	for _, maxBin := range []int{30, 2, 40, 1, 15} {
		sol := binpack.RandomAssignment(inst.Len(), maxBin, rng)
		assert.Equal(t, binpack.Evaluate(inst, sol), e.Cost(sol))
	}
}

func TestNewEvaluatorRejectsInvalidInstance(t *testing.T) {
	_, err := binpack.NewEvaluator(&binpack.Instance{Capacity: 0})
	require.ErrorIs(t, err, binpack.ErrInvalidInstance)
}

func TestWasteSquared(t *testing.T) {
	inst := scenarioInstance(t)

	assert.InDelta(t, 0.0, binpack.WasteSquared(inst, binpack.Solution{1, 1, 2, 2}), 1e-12)
	// Loads 4, 6, 10: waste 6² + 4² + 0².
	assert.InDelta(t, 52.0, binpack.WasteSquared(inst, binpack.Solution{1, 2, 3, 3}), 1e-12)
}

func TestInstanceValidate(t *testing.T) {
	tests := []struct {
		name string
		inst *binpack.Instance
	}{
		{"nil", nil},
		{"zero capacity", &binpack.Instance{Capacity: 0}},
		{"empty id", &binpack.Instance{Capacity: 1, Items: []binpack.Item{{Size: 1}}}},
		{"duplicate id", &binpack.Instance{Capacity: 1, Items: []binpack.Item{{ID: "a", Size: 1}, {ID: "a", Size: 1}}}},
		{"non-positive size", &binpack.Instance{Capacity: 1, Items: []binpack.Item{{ID: "a", Size: 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.inst.Validate(), binpack.ErrInvalidInstance)
		})
	}

	ok := &binpack.Instance{Capacity: 1, Items: []binpack.Item{{ID: "big", Size: 7}}}
	require.NoError(t, ok.Validate())
}

func TestReport(t *testing.T) {
	inst := scenarioInstance(t)

	bins := binpack.Report(inst, binpack.Solution{1, 3, 3, 1})
	require.Len(t, bins, 3)

	assert.Equal(t, 1, bins[0].Bin)
	assert.Equal(t, []binpack.Item{{ID: "A", Size: 4}, {ID: "D", Size: 5}}, bins[0].Items)
	assert.InDelta(t, 9.0, bins[0].Load, 1e-12)
	assert.InDelta(t, 1.0, bins[0].Remaining, 1e-12)
	assert.InDelta(t, 0.9, bins[0].Efficiency, 1e-12)

	assert.Empty(t, bins[1].Items)
	assert.InDelta(t, 10.0, bins[1].Remaining, 1e-12)

	assert.InDelta(t, 11.0, bins[2].Load, 1e-12)
	assert.InDelta(t, -1.0, bins[2].Remaining, 1e-12)
}
