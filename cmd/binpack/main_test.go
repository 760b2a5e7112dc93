package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binPack/internal/bench"
	"binPack/internal/config"
	"binPack/internal/opt"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func writeProblem(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.json")
	doc := `{"kapasitas_kontainer": 10, "barang": [{"id": "A", "ukuran": 4}, {"id": "B", "ukuran": 6}, {"id": "C", "ukuran": 5}, {"id": "D", "ukuran": 5}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestSolveCommand(t *testing.T) {
	problem := writeProblem(t)
	dir := t.TempDir()
	results := filepath.Join(dir, "results.yaml")
	prom := filepath.Join(dir, "binpack.prom")

	out, err := execute(t, "solve", problem,
		"--algorithms", "steepest,ga",
		"--population-size", "8",
		"--generations", "5",
		"--log-level", "error",
		"--out", results,
		"--metrics-file", prom,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "== steepest:")
	assert.Contains(t, out, "== ga:")
	assert.Contains(t, out, "bin 1:")

	data, err := os.ReadFile(results)
	require.NoError(t, err)
	assert.Contains(t, string(data), "algorithm: steepest")
	assert.Contains(t, string(data), "algorithm: ga")

	data, err = os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "binpack_runs_total")
}

func TestSolveRejectsUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "solve", writeProblem(t), "--algorithms", "tabu", "--log-level", "error")
	require.ErrorIs(t, err, opt.ErrConfiguration)
}

func TestSolveMissingFile(t *testing.T) {
	_, err := execute(t, "solve", filepath.Join(t.TempDir(), "absent.json"), "--log-level", "error")
	require.Error(t, err)
}

func TestBenchCommand(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out", "bench.csv")

	out, err := execute(t, "bench",
		"--cases", "12x50",
		"--runs", "2",
		"--algorithms", "steepest,stochastic",
		"--log-level", "error",
		"--out", csvPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "steepest")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "steepest", rows[1][0])
	assert.Equal(t, "stochastic", rows[2][0])
	assert.Equal(t, "2", rows[1][3])
}

func TestParseCases(t *testing.T) {
	cases, err := parseCases("50x100, 20x10", 777, 1, 0)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, bench.Case{Items: 50, Capacity: 100, MinSize: 1, MaxSize: 70, InstanceSeed: 777 + 5000 + 100}, cases[0])
	assert.Equal(t, 7.0, cases[1].MaxSize)
	assert.Equal(t, int64(777+10_000+2000+10), cases[1].InstanceSeed)

	for _, bad := range []string{"", "50", "ax10", "10xb", "0x10", "10x0"} {
		_, err := parseCases(bad, 1, 1, 0)
		assert.Error(t, err, "case %q", bad)
	}
}

func TestNewOptimizerCoversEveryAlgorithm(t *testing.T) {
	o := config.Defaults()
	for _, name := range config.Algorithms {
		op, err := newOptimizer(name, o, 1, nil)
		require.NoError(t, err, name)
		assert.NotNil(t, op, name)
	}
	_, err := newOptimizer("tabu", o, 1, nil)
	require.ErrorIs(t, err, opt.ErrConfiguration)
}
