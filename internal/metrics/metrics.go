// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec
	VerificationTotal      *prometheus.CounterVec

	// Dispatch metrics
	DispatchTotal *prometheus.CounterVec

	// Outbound Cloud API metrics
	SendRequestsTotal   *prometheus.CounterVec
	SendDurationSeconds *prometheus.HistogramVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		WebhookRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wa_webhook_requests_total",
				Help: "Total number of webhook deliveries by kind and status",
			},
			[]string{"kind", "status"}, // kind: message, status_update, empty; status: ok, parse_error
		),

		WebhookDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wa_webhook_duration_seconds",
				Help:    "Webhook handling duration in seconds, including outbound sends",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"kind"},
		),

		VerificationTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wa_verification_total",
				Help: "Total number of webhook subscription handshakes by result",
			},
			[]string{"result"}, // result: success, failure
		),

		DispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wa_dispatch_total",
				Help: "Total number of inbound messages by dispatch outcome",
			},
			[]string{"outcome"}, // outcome: button_prompt, ug_list, pg_list, text, ignored
		),

		SendRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wa_send_requests_total",
				Help: "Total number of outbound send-message calls by operation and status",
			},
			[]string{"operation", "status"}, // status: success, error, or HTTP status class (4xx, 5xx)
		),

		SendDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wa_send_duration_seconds",
				Help:    "Outbound send-message call duration in seconds by operation",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"operation"},
		),
	}
}

// RecordWebhook records a webhook delivery
func (m *Metrics) RecordWebhook(kind, status string, duration float64) {
	if m == nil {
		return
	}
	m.WebhookRequestsTotal.WithLabelValues(kind, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(kind).Observe(duration)
}

// RecordVerification records a subscription handshake result
func (m *Metrics) RecordVerification(result string) {
	if m == nil {
		return
	}
	m.VerificationTotal.WithLabelValues(result).Inc()
}

// RecordDispatch records how an inbound message was routed
func (m *Metrics) RecordDispatch(outcome string) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(outcome).Inc()
}

// RecordSend records an outbound send-message call
func (m *Metrics) RecordSend(operation, status string, duration float64) {
	if m == nil {
		return
	}
	m.SendRequestsTotal.WithLabelValues(operation, status).Inc()
	m.SendDurationSeconds.WithLabelValues(operation).Observe(duration)
}
