package opt

type Event string

const (
	// EventStart carries the cost of the starting solution.
	EventStart Event = "start"
	// EventAccept is an accepted move of a local search.
	EventAccept Event = "accept"
	// EventIteration is the per-iteration objective of simulated annealing.
	EventIteration Event = "iteration"
	// EventCandidate is an annealing candidate with a negative delta.
	EventCandidate Event = "candidate"
	// EventGeneration closes one GA generation.
	EventGeneration Event = "generation"
)

// TraceRecord is one search event. Fields that do not apply to an event are zero.
type TraceRecord struct {
	Iteration   int     `json:"iteration"`
	BestCost    float64 `json:"best_cost"`
	Event       Event   `json:"event"`
	Cost        float64 `json:"cost,omitempty"`
	Delta       float64 `json:"delta,omitempty"`
	Probability float64 `json:"probability,omitempty"`
	Accepted    bool    `json:"accepted,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type Trace []TraceRecord

// Observer receives trace records synchronously, in order, from the search
// goroutine. It must not retain the engine's solutions or block for long.
type Observer func(TraceRecord)

// Recorder builds the append-only trace of one run and forwards every record
// to an optional observer.
type Recorder struct {
	trace   Trace
	observe Observer
}

func NewRecorder(observe Observer) *Recorder {
	return &Recorder{observe: observe}
}

func (r *Recorder) Record(rec TraceRecord) {
	r.trace = append(r.trace, rec)
	if r.observe != nil {
		r.observe(rec)
	}
}

func (r *Recorder) Len() int { return len(r.trace) }

// Trace hands the records over; the recorder must not be used afterwards.
func (r *Recorder) Trace() Trace { return r.trace }

// Best returns the last reported best cost, or false for an empty trace.
func (t Trace) Best() (float64, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1].BestCost, true
}

// Filter returns the records of the given kind, in order.
func (t Trace) Filter(kind Event) Trace {
	var out Trace
	for _, rec := range t {
		if rec.Event == kind {
			out = append(out, rec)
		}
	}
	return out
}
