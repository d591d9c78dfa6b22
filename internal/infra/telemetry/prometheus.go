package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"essaipanel/internal/domain"
)

type PrometheusMetrics struct {
	loads        *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	records      *prometheus.GaugeVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "essaipanel_loads_total",
				Help: "Total number of tool database loads",
			},
			[]string{"source", "outcome"},
		),
		loadDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "essaipanel_load_duration_seconds",
				Help:    "Duration of tool database loads in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"source"},
		),
		records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "essaipanel_records",
				Help: "Number of tool records from the most recent load",
			},
			[]string{"source"},
		),
	}
}

func (p *PrometheusMetrics) ObserveLoad(source domain.SourceKind, outcome domain.LoadOutcome, duration time.Duration) {
	p.loads.WithLabelValues(string(source), string(outcome)).Inc()
	p.loadDuration.WithLabelValues(string(source)).Observe(duration.Seconds())
}

func (p *PrometheusMetrics) SetRecords(source domain.SourceKind, count int) {
	p.records.WithLabelValues(string(source)).Set(float64(count))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
