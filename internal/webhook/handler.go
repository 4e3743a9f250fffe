// Package webhook serves the WhatsApp Cloud API webhook: the GET subscription
// handshake and the POST message deliveries.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/bot"
	domerrors "github.com/garyellow/whatsapp-course-bot/internal/errors"
	"github.com/garyellow/whatsapp-course-bot/internal/logger"
	"github.com/garyellow/whatsapp-course-bot/internal/metrics"
	"github.com/garyellow/whatsapp-course-bot/internal/whatsapp"
	"github.com/gin-gonic/gin"
)

// Fixed response bodies.
const (
	AckBody                = "OK"
	VerificationFailedBody = "Verification failed"
)

// maxBodyBytes bounds a single webhook delivery. Meta batches are far smaller.
const maxBodyBytes = 1 << 20

// Dispatcher routes a decoded delivery. *bot.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload *whatsapp.WebhookPayload) bot.Result
}

// Handler handles WhatsApp webhook requests
type Handler struct {
	verifyToken string
	dispatcher  Dispatcher
	logger      *logger.Logger
	metrics     *metrics.Metrics
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	VerifyToken string
	Dispatcher  Dispatcher
	Logger      *logger.Logger
	Metrics     *metrics.Metrics // optional
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		verifyToken: cfg.VerifyToken,
		dispatcher:  cfg.Dispatcher,
		logger:      cfg.Logger.WithModule("webhook"),
		metrics:     cfg.Metrics,
	}
}

// Verify answers the subscription handshake. It echoes hub.challenge only
// when hub.mode is present and hub.verify_token matches the configured secret.
func (h *Handler) Verify(c *gin.Context) {
	ctx := c.Request.Context()
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if !h.tokenMatches(mode, token) {
		h.metrics.RecordVerification("failure")
		h.logger.WarnContext(ctx, "Webhook verification rejected",
			"mode_present", mode != "",
			"error", domerrors.ErrVerificationFailed,
		)
		c.String(http.StatusForbidden, VerificationFailedBody)
		return
	}

	h.metrics.RecordVerification("success")
	h.logger.InfoContext(ctx, "Webhook verified", "mode", mode)
	c.String(http.StatusOK, challenge)
}

func (h *Handler) tokenMatches(mode, token string) bool {
	if mode == "" || token == "" || h.verifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1
}

// Handle processes a delivery synchronously and always acknowledges with
// 200 "OK", including when the body cannot be decoded or a send fails.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	payload, err := decodePayload(c.Request.Body)
	if err != nil {
		h.metrics.RecordWebhook("unknown", "parse_error", time.Since(start).Seconds())
		h.logger.WithError(err).WarnContext(ctx, "Ignoring undecodable webhook body")
		c.String(http.StatusOK, AckBody)
		return
	}

	// A client disconnect must not abort a reply mid-send; sends are
	// bounded by the Cloud API client timeout instead.
	res := h.dispatcher.Dispatch(context.WithoutCancel(ctx), payload)

	kind := deliveryKind(res)
	h.metrics.RecordWebhook(kind, "ok", time.Since(start).Seconds())
	h.logger.InfoContext(ctx, "Webhook processed",
		"kind", kind,
		"messages", res.Messages,
		"statuses", res.Statuses,
		"sent", res.Sent,
		"failed", res.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	c.String(http.StatusOK, AckBody)
}

func decodePayload(body io.Reader) (*whatsapp.WebhookPayload, error) {
	var payload whatsapp.WebhookPayload
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domerrors.ErrMalformedEvent, err)
	}
	return &payload, nil
}

func deliveryKind(res bot.Result) string {
	switch {
	case res.Messages > 0:
		return "message"
	case res.Statuses > 0:
		return "status_update"
	default:
		return "empty"
	}
}
