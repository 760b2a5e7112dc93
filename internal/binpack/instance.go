package binpack

import (
	"fmt"
	"math/rand"
	"strconv"
)

type Item struct {
	ID   string
	Size float64
}

// Instance is read-only for the lifetime of a search run.
type Instance struct {
	Capacity float64
	Items    []Item
}

func NewInstance(capacity float64, items []Item) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Items: items}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks structural soundness only. Items larger than the capacity
// are legal: their bin simply overflows forever.
func (inst *Instance) Validate() error {
	if inst == nil {
		return fmt.Errorf("%w: instance is nil", ErrInvalidInstance)
	}
	if !(inst.Capacity > 0) {
		return fmt.Errorf("%w: capacity must be > 0 (got %g)", ErrInvalidInstance, inst.Capacity)
	}
	seen := make(map[string]int, len(inst.Items))
	for i, it := range inst.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: items[%d] has empty id", ErrInvalidInstance, i)
		}
		if prev, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: duplicate item id %q (items[%d] and items[%d])", ErrInvalidInstance, it.ID, prev, i)
		}
		seen[it.ID] = i
		if !(it.Size > 0) {
			return fmt.Errorf("%w: items[%d] (%s) size must be > 0 (got %g)", ErrInvalidInstance, i, it.ID, it.Size)
		}
	}
	return nil
}

func (inst *Instance) Len() int { return len(inst.Items) }

func (inst *Instance) Size(item int) float64 {
	return inst.Items[item].Size
}

// TotalSize is the sum of all item sizes.
func (inst *Instance) TotalSize() float64 {
	total := 0.0
	for _, it := range inst.Items {
		total += it.Size
	}
	return total
}

func RandomInstance(items int, capacity, minSize, maxSize float64, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minSize <= 0 || maxSize < minSize {
		panic("invalid size bounds")
	}
	list := make([]Item, items)
	span := maxSize - minSize
	for i := range list {
		size := minSize
		if span > 0 {
			// Integral sizes keep generated instances readable and exact.
			size += float64(rng.Intn(int(span) + 1))
		}
		list[i] = Item{ID: "I" + strconv.Itoa(i+1), Size: size}
	}
	inst, err := NewInstance(capacity, list)
	if err != nil {
		panic(err)
	}
	return inst
}
