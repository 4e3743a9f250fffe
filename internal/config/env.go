// Package config defines environment variable keys for configuration.
package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// WhatsApp Cloud API (Required)
	EnvVerifyToken   = "WA_VERIFY_TOKEN"
	EnvAccessToken   = "WA_ACCESS_TOKEN"
	EnvPhoneNumberID = "WA_PHONE_NUMBER_ID"

	// WhatsApp Cloud API (Optional)
	EnvGraphAPIBaseURL = "WA_GRAPH_API_BASE_URL"
	EnvGraphAPIVersion = "WA_GRAPH_API_VERSION"
	EnvSendTimeout     = "WA_SEND_TIMEOUT"

	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	// Sentry Feature
	EnvSentryDSN         = "SENTRY_DSN"
	EnvSentryEnvironment = "SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsAuthEnabled = "METRICS_AUTH_ENABLED"
	EnvMetricsUsername    = "METRICS_USERNAME"
	EnvMetricsPassword    = "METRICS_PASSWORD"
)
