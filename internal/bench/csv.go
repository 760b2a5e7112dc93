package bench

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var header = []string{
	"algo", "items", "capacity", "runs",
	"time_best_ms", "time_mean_ms", "time_std_ms",
	"cost_best", "cost_mean", "cost_std",
	"bins_best", "bins_mean",
	"overflowing", "timed_out",
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Algo,
			strconv.Itoa(r.Items),
			ftoa(r.Capacity),
			strconv.Itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),

			strconv.Itoa(r.BinsBest),
			ftoa(r.BinsMean),

			strconv.Itoa(r.Overflowing),
			strconv.Itoa(r.TimedOut),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
