package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics implements the observability hooks with Prometheus collectors.
type metrics struct {
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	storeUsers   prometheus.Gauge
	operations   *prometheus.CounterVec
	opLatency    *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		storeOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "friendgraph_store_operations_total",
			Help: "Snapshot loads and saves by backend and result.",
		}, []string{"backend", "op", "result"}),
		storeLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "friendgraph_store_duration_seconds",
			Help:    "Snapshot load and save latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend", "op"}),
		storeUsers: f.NewGauge(prometheus.GaugeOpts{
			Name: "friendgraph_users",
			Help: "Users in the most recently loaded or saved snapshot.",
		}),
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "friendgraph_operations_total",
			Help: "Engine operations by name and outcome.",
		}, []string{"op", "outcome"}),
		opLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "friendgraph_operation_duration_seconds",
			Help:    "Engine operation latency, including load and save.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "friendgraph_cache_lookups_total",
			Help: "Query cache lookups by query and result.",
		}, []string{"query", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "friendgraph_cache_written_bytes_total",
			Help: "Bytes written to the query cache.",
		}, []string{"query"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "friendgraph_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "friendgraph_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *metrics) OnLoad(_ context.Context, backend string, users int, d time.Duration, err error) {
	m.storeOps.WithLabelValues(backend, "load", result(err)).Inc()
	m.storeLatency.WithLabelValues(backend, "load").Observe(d.Seconds())
	if err == nil {
		m.storeUsers.Set(float64(users))
	}
}

func (m *metrics) OnSave(_ context.Context, backend string, users int, d time.Duration, err error) {
	m.storeOps.WithLabelValues(backend, "save", result(err)).Inc()
	m.storeLatency.WithLabelValues(backend, "save").Observe(d.Seconds())
	if err == nil {
		m.storeUsers.Set(float64(users))
	}
}

func (m *metrics) OnOperation(_ context.Context, op, outcome string, d time.Duration, err error) {
	switch {
	case err != nil:
		outcome = "error"
	case outcome == "":
		outcome = "ok"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
	m.opLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (m *metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (m *metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}
