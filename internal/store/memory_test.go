package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binPack/internal/binpack"
	"binPack/internal/opt"
	"binPack/internal/store"
)

func sampleResult() opt.Result {
	return opt.Result{
		Solution:    binpack.Solution{1, 1, 2, 2},
		Cost:        binpack.Cost{Value: 1.8, Bins: 2, FillSquares: 2},
		Evaluations: 12,
		Iterations:  3,
		Duration:    1500 * time.Microsecond,
		Stopped:     opt.StopConverged,
		Meta:        map[string]any{"accepted": 2},
	}
}

func TestNewRun(t *testing.T) {
	res := sampleResult()

	r := store.NewRun("steepest", "problem.json", 42, res)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "steepest", r.Algorithm)
	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, 1.8, r.Cost)
	assert.Equal(t, 2, r.Bins)
	assert.Equal(t, int64(1), r.DurationMs)
	assert.Equal(t, []int{1, 1, 2, 2}, r.Solution)

	res.Solution[0] = 9
	assert.Equal(t, 1, r.Solution[0])
}

func TestMemorySaveAndGet(t *testing.T) {
	m := store.NewMemory()
	ctx := t.Context()

	id, err := m.SaveRun(ctx, store.NewRun("sa", "p", 1, sampleResult()))
	require.NoError(t, err)

	got, err := m.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "sa", got.Algorithm)
	assert.Equal(t, []int{1, 1, 2, 2}, got.Solution)

	got.Solution[0] = 7
	again, err := m.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Solution[0])

	got.Meta["accepted"] = 99
	listed, err := m.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	listed[0].Meta["accepted"] = 98
	again, err = m.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Meta["accepted"])

	_, err = m.GetRun(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryAssignsID(t *testing.T) {
	m := store.NewMemory()

	id, err := m.SaveRun(t.Context(), store.Run{Algorithm: "ga"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := m.GetRun(t.Context(), id)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemoryListRuns(t *testing.T) {
	m := store.NewMemory()
	ctx := t.Context()
	for _, algo := range []string{"steepest", "ga", "steepest", "sa"} {
		_, err := m.SaveRun(ctx, store.NewRun(algo, "p", 1, sampleResult()))
		require.NoError(t, err)
	}

	all, err := m.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "sa", all[0].Algorithm)

	steep, err := m.ListRuns(ctx, "steepest", 0)
	require.NoError(t, err)
	assert.Len(t, steep, 2)

	limited, err := m.ListRuns(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestMemorySaveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := store.NewMemory().SaveRun(ctx, store.Run{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryImplementsStore(t *testing.T) {
	var s store.Store = store.NewMemory()
	require.NoError(t, s.Close())
}
