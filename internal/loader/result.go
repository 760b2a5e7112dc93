package loader

import (
	"io"

	"gopkg.in/yaml.v3"

	"binPack/internal/binpack"
	"binPack/internal/opt"
)

type binDoc struct {
	Bin        int      `yaml:"bin"`
	Items      []string `yaml:"items"`
	Load       float64  `yaml:"load"`
	Remaining  float64  `yaml:"remaining"`
	Efficiency float64  `yaml:"efficiency"`
}

type runDoc struct {
	Algorithm   string         `yaml:"algorithm"`
	Cost        float64        `yaml:"cost"`
	Bins        int            `yaml:"bins"`
	Overflow    float64        `yaml:"overflow"`
	FillSquares float64        `yaml:"fill_squares"`
	Evaluations int            `yaml:"evaluations"`
	Iterations  int            `yaml:"iterations"`
	DurationMs  float64        `yaml:"duration_ms"`
	Stopped     string         `yaml:"stopped"`
	Assignment  map[string]int `yaml:"assignment"`
	Packing     []binDoc       `yaml:"packing"`
	Meta        map[string]any `yaml:"meta,omitempty"`
}

// Run pairs a strategy name with its result for WriteResults.
type Run struct {
	Algorithm string
	Result    opt.Result
}

// WriteResults encodes finished runs as a YAML document list keyed by item id.
func WriteResults(w io.Writer, inst *binpack.Instance, runs []Run) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range runs {
		if err := enc.Encode(newRunDoc(inst, r)); err != nil {
			return err
		}
	}
	return enc.Close()
}

func newRunDoc(inst *binpack.Instance, r Run) runDoc {
	res := r.Result
	d := runDoc{
		Algorithm:   r.Algorithm,
		Cost:        res.Cost.Value,
		Bins:        res.Cost.Bins,
		Overflow:    res.Cost.Overflow,
		FillSquares: res.Cost.FillSquares,
		Evaluations: res.Evaluations,
		Iterations:  res.Iterations,
		DurationMs:  float64(res.Duration.Microseconds()) / 1000.0,
		Stopped:     res.Stopped,
		Assignment:  make(map[string]int, len(res.Solution)),
		Meta:        res.Meta,
	}
	for i, b := range res.Solution {
		d.Assignment[inst.Items[i].ID] = b
	}
	for _, br := range binpack.Report(inst, res.Solution) {
		ids := make([]string, len(br.Items))
		for i, it := range br.Items {
			ids[i] = it.ID
		}
		d.Packing = append(d.Packing, binDoc{
			Bin:        br.Bin,
			Items:      ids,
			Load:       br.Load,
			Remaining:  br.Remaining,
			Efficiency: br.Efficiency,
		})
	}
	return d
}
