package opt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"binPack/internal/opt"
)

func TestRecorderForwardsInOrder(t *testing.T) {
	var seen []int
	r := opt.NewRecorder(func(rec opt.TraceRecord) { seen = append(seen, rec.Iteration) })

	r.Record(opt.TraceRecord{Iteration: 0, Event: opt.EventStart, BestCost: 5})
	r.Record(opt.TraceRecord{Iteration: 1, Event: opt.EventAccept, BestCost: 4})
	r.Record(opt.TraceRecord{Iteration: 2, Event: opt.EventAccept, BestCost: 3})

	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, 3, r.Len())

	best, ok := r.Trace().Best()
	assert.True(t, ok)
	assert.Equal(t, 3.0, best)
	assert.Len(t, r.Trace().Filter(opt.EventAccept), 2)
}

func TestRecorderWithoutObserver(t *testing.T) {
	r := opt.NewRecorder(nil)
	r.Record(opt.TraceRecord{Event: opt.EventStart})
	assert.Len(t, r.Trace(), 1)

	_, ok := opt.Trace(nil).Best()
	assert.False(t, ok)
}
