package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"transbot/internal/domain"
	"transbot/internal/ports/output"
)

var (
	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transbot_messages_total",
			Help: "Incoming messages by matched intent",
		},
		[]string{"intent"},
	)

	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transbot_translations_total",
			Help: "Translation service calls by outcome",
		},
		[]string{"outcome"},
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transbot_translation_duration_seconds",
			Help:    "Duration of translation service calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"outcome"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transbot_cache_lookups_total",
			Help: "Translation cache lookups by result",
		},
		[]string{"result"},
	)

	reportFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transbot_report_failures_total",
			Help: "Rejection cards that could not be delivered",
		},
	)
)

var _ output.Recorder = Recorder{}

// Recorder publishes use-case events to the default Prometheus registry.
type Recorder struct{}

func (Recorder) Intent(intent domain.Intent) {
	messagesTotal.WithLabelValues(string(intent)).Inc()
}

func (Recorder) Translation(succeeded bool, elapsed time.Duration) {
	outcome := "failure"
	if succeeded {
		outcome = "success"
	}
	translationsTotal.WithLabelValues(outcome).Inc()
	translationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (Recorder) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

func (Recorder) ReportFailed() {
	reportFailuresTotal.Inc()
}
