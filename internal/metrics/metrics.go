package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SessionsFinished *prometheus.CounterVec
	LookupErrors     prometheus.Counter
	GeocodeSeconds   *prometheus.HistogramVec
	ActiveSessions   prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SessionsFinished: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "enrichment_sessions_finished_total",
			Help: "Total number of finished listing enrichment sessions.",
		}, []string{"outcome"}),
		LookupErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "enrichment_lookup_errors_total",
			Help: "Total number of errors received from geocoding and places providers.",
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoding_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "enrichment_active_sessions",
			Help: "Current number of live listing enrichment sessions.",
		}),
	}
}
