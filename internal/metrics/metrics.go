// Package metrics exposes operational counters for the publish
// pipeline. These are service self-observability metrics, unrelated to
// the ad-performance data the campaigns themselves produce.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	// PublishAttempts counts publish attempts by outcome:
	// published, validation_failed, publish_failed, rate_limited.
	PublishAttempts *prometheus.CounterVec

	// ReconcileEnqueued counts reconciliation tasks queued after a
	// local write failed behind a successful upstream submission.
	ReconcileEnqueued prometheus.Counter

	// DraftRetries counts uniqueness-conflict retries during draft
	// ad creation.
	DraftRetries prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		PublishAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adpilot",
			Name:      "publish_attempts_total",
			Help:      "Publish attempts by outcome.",
		}, []string{"outcome"}),
		ReconcileEnqueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "adpilot",
			Name:      "reconcile_enqueued_total",
			Help:      "Reconciliation tasks enqueued after partial publish failures.",
		}),
		DraftRetries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "adpilot",
			Name:      "draft_name_retries_total",
			Help:      "Draft ad name conflicts retried with a disambiguator.",
		}),
	}
}

// Handler serves the metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
