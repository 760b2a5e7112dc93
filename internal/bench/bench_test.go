package bench

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"binPack/internal/opt"
	"binPack/internal/steepest"
)

func steepestAlgo() Algorithm {
	return Algorithm{
		Name: "steepest",
		Factory: func(seed int64) (opt.Optimizer, error) {
			return steepest.New(steepest.DefaultConfig(), rand.New(rand.NewSource(seed)))
		},
	}
}

func TestCalcStats(t *testing.T) {
	assert.Equal(t, Stats{}, CalcStats(nil))
	assert.Equal(t, Stats{N: 1, Best: 4, Mean: 4}, CalcStats([]float64{4}))

	s := CalcStats([]float64{3, 1, 4, 2})
	assert.Equal(t, 4, s.N)
	assert.Equal(t, 1.0, s.Best)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
}

func TestRunCase(t *testing.T) {
	c := Case{Items: 15, Capacity: 100, MinSize: 5, MaxSize: 60, InstanceSeed: 7}
	var seeds []int64
	r := Runner{
		Runs:     3,
		BaseSeed: 1000,
		Log:      zaptest.NewLogger(t),
		OnResult: func(algo string, seed int64, res opt.Result) {
			assert.Equal(t, "steepest", algo)
			seeds = append(seeds, seed)
		},
	}

	rec, err := r.RunCase(t.Context(), c, steepestAlgo())
	require.NoError(t, err)

	assert.Equal(t, "steepest", rec.Algo)
	assert.Equal(t, 15, rec.Items)
	assert.Equal(t, 3, rec.Runs)
	assert.LessOrEqual(t, rec.CostBest, rec.CostMean)
	assert.Positive(t, rec.BinsBest)
	assert.GreaterOrEqual(t, rec.CostStd, 0.0)
	assert.Zero(t, rec.TimedOut)
	require.Len(t, seeds, 3)
	assert.NotEqual(t, seeds[0], seeds[1])

	again, err := r.RunCase(t.Context(), c, steepestAlgo())
	require.NoError(t, err)
	assert.Equal(t, rec.CostMean, again.CostMean)
	assert.Equal(t, rec.BinsMean, again.BinsMean)
}

func TestRunCaseFactoryError(t *testing.T) {
	boom := errors.New("boom")
	algo := Algorithm{Name: "bad", Factory: func(int64) (opt.Optimizer, error) { return nil, boom }}

	_, err := Runner{Runs: 1}.RunCase(t.Context(), Case{Items: 3, Capacity: 10, MinSize: 1, MaxSize: 5}, algo)
	require.ErrorIs(t, err, boom)
}

func TestRunCaseRejectsZeroRuns(t *testing.T) {
	_, err := Runner{}.RunCase(t.Context(), Case{Items: 3, Capacity: 10, MinSize: 1, MaxSize: 5}, steepestAlgo())
	require.ErrorIs(t, err, opt.ErrConfiguration)
}

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{Algo: "ga", Items: 50, Capacity: 100, Runs: 5, CostBest: 17.5, BinsBest: 18, BinsMean: 18.4},
		{Algo: "sa", Items: 50, Capacity: 100, Runs: 5, TimedOut: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, records))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "ga", rows[1][0])
	assert.Equal(t, "17.500000", rows[1][7])
	assert.Equal(t, "18", rows[1][10])
	assert.Equal(t, "1", rows[2][13])

	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	require.NoError(t, WriteCSV(path, records))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "algo,items,capacity")
}
