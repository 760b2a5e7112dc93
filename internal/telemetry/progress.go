// Package telemetry turns search trace records into side effects: progress
// logging, Redis pub/sub streaming and fan-out between several observers.
package telemetry

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"binPack/internal/opt"
)

// Progress logs trace records at debug level, throttled to perSecond lines
// per second. The start record is always logged. perSecond <= 0 disables it.
func Progress(log *zap.Logger, algo string, perSecond float64) opt.Observer {
	if log == nil || perSecond <= 0 {
		return nil
	}
	lim := rate.NewLimiter(rate.Limit(perSecond), 1)
	log = log.With(zap.String("algo", algo))
	return func(rec opt.TraceRecord) {
		if rec.Event != opt.EventStart && !lim.Allow() {
			return
		}
		fields := []zap.Field{
			zap.String("event", string(rec.Event)),
			zap.Int("iteration", rec.Iteration),
			zap.Float64("best_cost", rec.BestCost),
		}
		if rec.Temperature != 0 {
			fields = append(fields, zap.Float64("temperature", rec.Temperature))
		}
		if rec.Event == opt.EventCandidate {
			fields = append(fields,
				zap.Float64("delta", rec.Delta),
				zap.Float64("probability", rec.Probability),
				zap.Bool("accepted", rec.Accepted),
			)
		}
		log.Debug("search progress", fields...)
	}
}

// Fanout forwards every record to each non-nil observer in order.
func Fanout(observers ...opt.Observer) opt.Observer {
	var live []opt.Observer
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(rec opt.TraceRecord) {
		for _, o := range live {
			o(rec)
		}
	}
}
