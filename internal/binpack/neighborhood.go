package binpack

import (
	"iter"
	"math/rand"
)

// Swap exchanges the item in slot SlotA of bin BinA with the item in slot
// SlotB of bin BinB (bins are 1-based, BinA < BinB). ItemA/ItemB are the item
// indices occupying those slots when the swap was produced.
type Swap struct {
	BinA, BinB   int
	SlotA, SlotB int
	ItemA, ItemB int
}

// Packing is the per-bin view of one solution used by the local-search
// strategies: membership lists and loads are kept in sync with the
// assignment. Apply mutates it in place; applying the same Swap a second time
// restores the previous state exactly, which gives the tentative
// apply → evaluate → revert protocol used by the hill climbers.
type Packing struct {
	inst    *Instance
	assign  Solution
	members [][]int
	loads   []float64
}

func NewPacking(inst *Instance, sol Solution) *Packing {
	assign := sol.Clone()
	return &Packing{
		inst:    inst,
		assign:  assign,
		members: assign.Members(),
		loads:   assign.Loads(inst),
	}
}

// Solution returns an owned copy of the current assignment.
func (p *Packing) Solution() Solution { return p.assign.Clone() }

// Assignment exposes the live assignment for read-only evaluation; callers
// must not modify or retain it across Apply calls.
func (p *Packing) Assignment() Solution { return p.assign }

func (p *Packing) NumBins() int { return len(p.members) }

func (p *Packing) Load(bin int) float64 { return p.loads[bin-1] }

// Bin returns the live member list of bin; read-only.
func (p *Packing) Bin(bin int) []int { return p.members[bin-1] }

func (p *Packing) Capacity() float64 { return p.inst.Capacity }

func (p *Packing) ItemSize(item int) float64 { return p.inst.Items[item].Size }

// Swaps enumerates the full swap neighborhood: every unordered pair of
// distinct bins and every pair of slots between them, in a fixed order.
// The sequence is lazy and can be ranged over again; items are resolved at
// yield time, so a consumer may Apply swaps while iterating (a swap never
// changes how many items a bin holds).
func (p *Packing) Swaps() iter.Seq[Swap] {
	return func(yield func(Swap) bool) {
		k := len(p.members)
		for a := 1; a <= k; a++ {
			for b := a + 1; b <= k; b++ {
				na, nb := len(p.members[a-1]), len(p.members[b-1])
				for sa := 0; sa < na; sa++ {
					for sb := 0; sb < nb; sb++ {
						if !yield(p.resolve(a, b, sa, sb)) {
							return
						}
					}
				}
			}
		}
	}
}

// NumSwaps is the size of the neighborhood Swaps enumerates.
func (p *Packing) NumSwaps() int {
	total, squares := 0, 0
	for _, m := range p.members {
		total += len(m)
		squares += len(m) * len(m)
	}
	return (total*total - squares) / 2
}

// SwapAt returns the k-th swap of the Swaps order, 0 <= k < NumSwaps().
func (p *Packing) SwapAt(k int) Swap {
	n := len(p.members)
	for a := 1; a <= n; a++ {
		na := len(p.members[a-1])
		if na == 0 {
			continue
		}
		for b := a + 1; b <= n; b++ {
			nb := len(p.members[b-1])
			block := na * nb
			if k < block {
				return p.resolve(a, b, k/nb, k%nb)
			}
			k -= block
		}
	}
	panic("binpack: swap index out of range")
}

// SampleSwap draws one swap uniformly from the whole neighborhood.
func (p *Packing) SampleSwap(rng *rand.Rand) (Swap, error) {
	total := p.NumSwaps()
	if total == 0 {
		return Swap{}, ErrEmptyNeighborhood
	}
	return p.SwapAt(rng.Intn(total)), nil
}

// SwapLoads reports the loads of both bins after s and whether both stay
// within capacity. The packing is not modified.
func (p *Packing) SwapLoads(s Swap) (newA, newB float64, fits bool) {
	ia := p.members[s.BinA-1][s.SlotA]
	ib := p.members[s.BinB-1][s.SlotB]
	sa, sb := p.inst.Items[ia].Size, p.inst.Items[ib].Size
	newA = p.loads[s.BinA-1] - sa + sb
	newB = p.loads[s.BinB-1] - sb + sa
	return newA, newB, newA <= p.inst.Capacity && newB <= p.inst.Capacity
}

// Apply exchanges the items in the two slots of s in place.
func (p *Packing) Apply(s Swap) {
	ma, mb := p.members[s.BinA-1], p.members[s.BinB-1]
	ia, ib := ma[s.SlotA], mb[s.SlotB]
	ma[s.SlotA], mb[s.SlotB] = ib, ia
	p.assign[ia] = s.BinB
	p.assign[ib] = s.BinA
	// Recomputing from members keeps loads free of accumulated rounding.
	p.loads[s.BinA-1] = p.sum(ma)
	p.loads[s.BinB-1] = p.sum(mb)
}

func (p *Packing) resolve(a, b, sa, sb int) Swap {
	return Swap{
		BinA: a, BinB: b,
		SlotA: sa, SlotB: sb,
		ItemA: p.members[a-1][sa],
		ItemB: p.members[b-1][sb],
	}
}

func (p *Packing) sum(items []int) float64 {
	total := 0.0
	for _, i := range items {
		total += p.inst.Items[i].Size
	}
	return total
}
