package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"litecoin-rpc/message"
)

// Metrics holds the collectors MetricsMiddleware reports to.
type Metrics struct {
	Calls    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics registers the RPC collectors with reg. Registering twice with
// the same registerer reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "litecoin_rpc",
		Name:      "calls_total",
		Help:      "RPC calls by method and outcome (ok, fault, error).",
	}, []string{"method", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "litecoin_rpc",
		Name:      "call_duration_seconds",
		Help:      "Round trip time of RPC calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	var err error
	if calls, err = register(reg, calls); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &Metrics{Calls: calls, Duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// MetricsMiddleware counts calls and observes their latency.
func MetricsMiddleware(m *Metrics) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			m.Duration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

			outcome := "ok"
			switch {
			case err != nil:
				outcome = "error"
			case resp.IsFault():
				outcome = "fault"
			}
			m.Calls.WithLabelValues(req.Method, outcome).Inc()
			return resp, err
		}
	}
}
