package binpack

// BinReport is the per-bin breakdown handed to reporting collaborators.
type BinReport struct {
	Bin        int
	Items      []Item
	Load       float64
	Remaining  float64
	Efficiency float64
}

// Report lists bins 1..K in order, including empty ones.
func Report(inst *Instance, sol Solution) []BinReport {
	members := sol.Members()
	out := make([]BinReport, len(members))
	for b, m := range members {
		r := BinReport{Bin: b + 1, Items: make([]Item, 0, len(m))}
		for _, i := range m {
			r.Items = append(r.Items, inst.Items[i])
			r.Load += inst.Items[i].Size
		}
		r.Remaining = inst.Capacity - r.Load
		r.Efficiency = r.Load / inst.Capacity
		out[b] = r
	}
	return out
}
