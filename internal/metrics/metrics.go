package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"binPack/internal/opt"
)

var (
	// Registry is the dedicated Prometheus registry for search runs
	Registry = prometheus.NewRegistry()
	// Runs counts finished runs by algorithm and stop reason
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "binpack_runs_total", Help: "Finished search runs."},
		[]string{"algo", "stopped"},
	)
	// RunDuration records wall time per run in seconds
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "binpack_run_duration_seconds", Help: "Search run duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 10)},
		[]string{"algo"},
	)
	// BestCost is the objective value of the latest run
	BestCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "binpack_best_cost", Help: "Objective value of the latest run."},
		[]string{"algo"},
	)
	// Bins is the bin count of the latest run
	Bins = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "binpack_bins", Help: "Bins used by the latest run."},
		[]string{"algo"},
	)
	// Evaluations counts objective evaluations
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "binpack_evaluations_total", Help: "Objective evaluations."},
		[]string{"algo"},
	)
	// TraceEvents counts trace records by kind
	TraceEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "binpack_trace_events_total", Help: "Search trace records by event."},
		[]string{"algo", "event"},
	)
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Runs)
		Registry.MustRegister(RunDuration)
		Registry.MustRegister(BestCost)
		Registry.MustRegister(Bins)
		Registry.MustRegister(Evaluations)
		Registry.MustRegister(TraceEvents)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// ObserveResult records one finished run.
func ObserveResult(algo string, res opt.Result) {
	Runs.WithLabelValues(algo, res.Stopped).Inc()
	RunDuration.WithLabelValues(algo).Observe(res.Duration.Seconds())
	BestCost.WithLabelValues(algo).Set(res.Cost.Value)
	Bins.WithLabelValues(algo).Set(float64(res.Cost.Bins))
	Evaluations.WithLabelValues(algo).Add(float64(res.Evaluations))
}

// TraceObserver counts trace records as they are produced.
func TraceObserver(algo string) opt.Observer {
	counters := make(map[opt.Event]prometheus.Counter)
	return func(rec opt.TraceRecord) {
		c, ok := counters[rec.Event]
		if !ok {
			c = TraceEvents.WithLabelValues(algo, string(rec.Event))
			counters[rec.Event] = c
		}
		c.Inc()
	}
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
