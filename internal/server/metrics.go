package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/Zuo-Peng/chat-analyzer/internal/store"
)

const namespace = "cha"

// Metrics holds the Prometheus metrics for the HTTP API.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	UploadsTotal    *prometheus.CounterVec
	AnalysisSeconds prometheus.Histogram
	MessagesParsed  prometheus.Counter
}

// NewMetrics registers the API metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Chat uploads by result",
			},
			[]string{"result"},
		),
		AnalysisSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_seconds",
				Help:      "Time to parse and aggregate one upload",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		),
		MessagesParsed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_parsed_total",
				Help:      "Messages parsed from uploads",
			},
		),
	}
}

// storeCollector reads row counts from the store on each scrape.
type storeCollector struct {
	st       *store.Store
	sessions *prometheus.Desc
	messages *prometheus.Desc
}

func newStoreCollector(st *store.Store) *storeCollector {
	return &storeCollector{
		st: st,
		sessions: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "sessions"),
			"Number of stored analysis sessions",
			nil, nil,
		),
		messages: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "messages"),
			"Number of stored messages",
			nil, nil,
		),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessions
	ch <- c.messages
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	if c.st == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if n, err := c.st.SessionCount(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.sessions, prometheus.GaugeValue, float64(n))
	} else {
		log.Warn().Err(err).Msg("collect session count")
	}
	if n, err := c.st.MessageCount(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(n))
	} else {
		log.Warn().Err(err).Msg("collect message count")
	}
}
