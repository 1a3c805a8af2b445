// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	dto "github.com/prometheus/client_model/go"
)

type serverMetrics struct {
	requests metric.CounterVec
	duration metric.CounterVec
	inflight metric.Gauge
}

func newMetrics(registerer metric.Registerer) (*serverMetrics, error) {
	m := &serverMetrics{
		requests: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "endpoint"},
		),
		duration: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "api_request_duration_seconds",
				Help: "Cumulative API request duration in seconds",
			},
			[]string{"method", "endpoint"},
		),
		inflight: metric.NewGauge(metric.GaugeOpts{
			Name: "api_requests_inflight",
			Help: "Number of inflight API requests",
		}),
	}

	err := errors.Join(
		registerer.Register(metric.AsCollector(m.requests)),
		registerer.Register(metric.AsCollector(m.duration)),
		registerer.Register(metric.AsCollector(m.inflight)),
	)
	return m, err
}

func (m *serverMetrics) wrapHandler(endpoint string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		labels := metric.Labels{
			"method":   r.Method,
			"endpoint": endpoint,
		}
		m.requests.With(labels).Inc()
		m.inflight.Inc()
		defer m.inflight.Dec()

		start := time.Now()
		handler.ServeHTTP(w, r)
		m.duration.With(labels).Add(time.Since(start).Seconds())
	})
}

// exposition serves gatherer alongside the Go runtime and process
// collectors in the Prometheus text format.
func exposition(gatherer metric.Gatherer) (prometheus.Gatherer, error) {
	runtime := prometheus.NewRegistry()
	err := errors.Join(
		runtime.Register(collectors.NewGoCollector()),
		runtime.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	return prometheus.Gatherers{
		prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
			families, err := gatherer.Gather()
			return metric.NativeToDTO(families), err
		}),
		runtime,
	}, err
}
