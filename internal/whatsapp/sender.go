package whatsapp

import (
	"context"

	"github.com/garyellow/whatsapp-course-bot/internal/menu"
)

// Send operations, used as metric and log labels.
const (
	OpButtonPrompt = "button_prompt"
	OpUGList       = "ug_list"
	OpPGList       = "pg_list"
	OpText         = "text"
)

// Sender renders the course menu as Cloud API messages.
type Sender struct {
	client *Client
}

// NewSender creates a Sender on top of client.
func NewSender(client *Client) *Sender {
	return &Sender{client: client}
}

// SendButtonPrompt sends the UG/PG program prompt.
func (s *Sender) SendButtonPrompt(ctx context.Context, to string) error {
	return s.client.Send(ctx, OpButtonPrompt, NewButtonMessage(to, menu.ProgramPrompt))
}

// SendUGList sends the undergraduate course list.
func (s *Sender) SendUGList(ctx context.Context, to string) error {
	return s.client.Send(ctx, OpUGList, NewListMessage(to, menu.UGList))
}

// SendPGList sends the postgraduate course list.
func (s *Sender) SendPGList(ctx context.Context, to string) error {
	return s.client.Send(ctx, OpPGList, NewListMessage(to, menu.PGList))
}

// SendText sends body as a plain text message.
func (s *Sender) SendText(ctx context.Context, to, body string) error {
	return s.client.Send(ctx, OpText, NewTextMessage(to, body))
}
