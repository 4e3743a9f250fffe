package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/buildinfo"
	"github.com/garyellow/whatsapp-course-bot/internal/config"
	domerrors "github.com/garyellow/whatsapp-course-bot/internal/errors"
	"github.com/garyellow/whatsapp-course-bot/internal/logger"
	"github.com/garyellow/whatsapp-course-bot/internal/metrics"
)

// maxResponseBody bounds how much of a Cloud API response is read.
const maxResponseBody = 64 << 10

// Client submits outbound messages to the Cloud API send-message endpoint.
// Each Send is exactly one HTTP request; failures are returned, never retried.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	userAgent   string
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// sendResponse is the success body of the send-message endpoint.
type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// NewClient creates a client for the configured phone number.
// The configured send timeout bounds every request end to end.
func NewClient(cfg config.WhatsAppConfig, log *logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.SendTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint:    cfg.MessagesURL(),
		accessToken: cfg.AccessToken,
		userAgent:   buildinfo.UserAgent(),
		logger:      log.WithModule("whatsapp"),
		metrics:     m,
	}
}

// Send posts msg to the send-message endpoint. operation labels metrics,
// logs and errors (e.g. "ug_list"). A non-2xx response yields *errors.SendError.
func (c *Client) Send(ctx context.Context, operation string, msg *OutboundMessage) error {
	wrap := domerrors.NewWrapper("whatsapp", operation)
	start := time.Now()

	payload, err := json.Marshal(msg)
	if err != nil {
		return wrap.Wrap(err, "encode message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return wrap.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordSend(operation, "error", time.Since(start).Seconds())
		return wrap.Wrap(err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordSend(operation, "error", duration.Seconds())
		return wrap.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordSend(operation, statusClass(resp.StatusCode), duration.Seconds())
		return domerrors.NewSendError(operation, resp.StatusCode, body)
	}
	c.metrics.RecordSend(operation, "success", duration.Seconds())

	var result sendResponse
	if err := json.Unmarshal(body, &result); err == nil && len(result.Messages) > 0 {
		c.logger.DebugContext(ctx, "Message sent",
			"operation", operation,
			"wamid", result.Messages[0].ID,
			"duration_ms", duration.Milliseconds(),
		)
	}
	return nil
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	default:
		return "other"
	}
}
