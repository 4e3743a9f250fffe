// Package config provides centralized timeout constants for the application.
//
// Meta delivers webhooks with a short client timeout and redelivers on failure,
// so the server answers as soon as the (single) outbound send has finished.
// The outbound send itself is bounded by WhatsAppConfig.SendTimeout.
package config

import "time"

// HTTP server timeouts
const (
	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	// Meta sends small JSON payloads.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Must exceed the default send timeout plus response serialization.
	WebhookHTTPWrite = 30 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// SentryFlushTimeout bounds flushing buffered error events at shutdown.
const SentryFlushTimeout = 2 * time.Second
