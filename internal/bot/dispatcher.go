package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/ctxutil"
	domerrors "github.com/garyellow/whatsapp-course-bot/internal/errors"
	"github.com/garyellow/whatsapp-course-bot/internal/logger"
	"github.com/garyellow/whatsapp-course-bot/internal/menu"
	"github.com/garyellow/whatsapp-course-bot/internal/metrics"
	"github.com/garyellow/whatsapp-course-bot/internal/sentry"
	"github.com/garyellow/whatsapp-course-bot/internal/stringutil"
	"github.com/garyellow/whatsapp-course-bot/internal/whatsapp"
)

// Outcome says how one inbound message was routed.
type Outcome string

const (
	OutcomeButtonPrompt Outcome = "button_prompt"
	OutcomeUGList       Outcome = "ug_list"
	OutcomePGList       Outcome = "pg_list"
	OutcomeText         Outcome = "text"
	OutcomeIgnored      Outcome = "ignored"
)

// Result summarizes one webhook delivery.
type Result struct {
	Messages int // first messages considered, at most one per change
	Statuses int // delivery status updates, never acted on
	Sent     int // replies the provider accepted
	Failed   int // replies that errored or panicked
}

// Dispatcher matches inbound messages against the menu and triggers replies.
// It holds no per-user state: every message is routed by its own content.
type Dispatcher struct {
	sender  MessageSender
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// DispatcherConfig holds dependencies for creating a Dispatcher.
type DispatcherConfig struct {
	Sender  MessageSender
	Logger  *logger.Logger
	Metrics *metrics.Metrics // optional
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		sender:  cfg.Sender,
		logger:  cfg.Logger.WithModule("bot"),
		metrics: cfg.Metrics,
	}
}

// Dispatch handles the first message of every change in payload, in order.
// Send failures are logged and reported but never returned: the platform
// gets the same acknowledgment whether or not a reply went out.
func (d *Dispatcher) Dispatch(ctx context.Context, payload *whatsapp.WebhookPayload) Result {
	res := Result{Statuses: payload.CountStatuses()}

	for _, msg := range payload.FirstMessages() {
		res.Messages++

		outcome, err := d.HandleMessage(ctx, msg)
		switch {
		case err != nil:
			res.Failed++
		case outcome != OutcomeIgnored:
			res.Sent++
		}
	}

	if res.Statuses > 0 {
		d.logger.DebugContext(ctx, "Ignoring delivery status updates", "count", res.Statuses)
	}
	return res
}

// HandleMessage routes a single message and performs at most one send.
// The returned error is informational; Dispatch does not propagate it.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg whatsapp.Message) (outcome Outcome, err error) {
	ctx = ctxutil.WithSenderID(ctx, msg.From)
	ctx = ctxutil.WithMessageID(ctx, msg.ID)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch panic: %v", r)
			d.logger.ErrorContext(ctx, "Dispatch panicked",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			sentry.CaptureException(ctx, err, map[string]string{"component": "dispatcher"})
		}
		d.metrics.RecordDispatch(string(outcome))
	}()

	outcome = route(msg)
	if outcome == OutcomeIgnored {
		d.logger.DebugContext(ctx, "No menu action for message", "type", msg.Type)
		return outcome, nil
	}

	err = d.send(ctx, outcome, msg)
	if err != nil {
		d.logger.WithError(err).WarnContext(ctx, "Failed to send reply",
			"outcome", string(outcome),
			"provider_status", domerrors.StatusCode(err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		sentry.CaptureException(ctx, err, map[string]string{
			"component":       "dispatcher",
			"outcome":         string(outcome),
			"provider_status": strconv.Itoa(domerrors.StatusCode(err)),
		})
		return outcome, err
	}

	d.logger.InfoContext(ctx, "Reply sent",
		"outcome", string(outcome),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outcome, nil
}

func (d *Dispatcher) send(ctx context.Context, outcome Outcome, msg whatsapp.Message) error {
	switch outcome {
	case OutcomeButtonPrompt:
		return d.sender.SendButtonPrompt(ctx, msg.From)
	case OutcomeUGList:
		return d.sender.SendUGList(ctx, msg.From)
	case OutcomePGList:
		return d.sender.SendPGList(ctx, msg.From)
	case OutcomeText:
		entry, _ := menu.LookupRow(msg.Interactive.ListReply.ID)
		return d.sender.SendText(ctx, msg.From, entry.Text)
	default:
		return nil
	}
}

// route decides the reply for msg without side effects.
func route(msg whatsapp.Message) Outcome {
	switch msg.Type {
	case whatsapp.MessageTypeText:
		if msg.Text != nil && stringutil.EqualFold(msg.Text.Body, menu.Greeting) {
			return OutcomeButtonPrompt
		}
	case whatsapp.MessageTypeInteractive:
		return routeInteractive(msg.Interactive)
	}
	return OutcomeIgnored
}

// routeInteractive checks the button reply first and looks at the list
// reply only when no button reply is present.
func routeInteractive(reply *whatsapp.InteractiveReply) Outcome {
	if reply == nil {
		return OutcomeIgnored
	}

	if reply.ButtonReply != nil {
		entry, ok := menu.LookupButton(reply.ButtonReply.ID)
		if !ok {
			return OutcomeIgnored
		}
		switch entry.Action {
		case menu.ActionUGList:
			return OutcomeUGList
		case menu.ActionPGList:
			return OutcomePGList
		default:
			return OutcomeIgnored
		}
	}

	if reply.ListReply != nil {
		if entry, ok := menu.LookupRow(reply.ListReply.ID); ok && entry.Action == menu.ActionText {
			return OutcomeText
		}
	}
	return OutcomeIgnored
}
