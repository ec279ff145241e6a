package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	entriesCreated  prometheus.Counter
	importRecords   *prometheus.CounterVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpm_http_requests_total",
			Help: "HTTP requests by method, route and status class.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kpm_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpm_entries_created_total",
			Help: "KPI entries created through the API or import.",
		}),
		importRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpm_import_records_total",
			Help: "CSV import records by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(c.requestsTotal, c.requestDuration, c.entriesCreated, c.importRecords)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	class := "2xx"
	switch {
	case status >= 500:
		class = "5xx"
	case status >= 400:
		class = "4xx"
	case status >= 300:
		class = "3xx"
	}
	c.requestsTotal.WithLabelValues(method, route, class).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) EntryCreated() {
	c.entriesCreated.Inc()
}

func (c *Collector) ImportRecord(outcome string, count int) {
	c.importRecords.WithLabelValues(outcome).Add(float64(count))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
