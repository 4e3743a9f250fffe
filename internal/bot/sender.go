// Package bot routes inbound WhatsApp messages through the course menu.
// It depends only on the MessageSender capability, so the Cloud API client
// can be replaced with a fake in tests.
package bot

import "context"

// MessageSender delivers menu replies to a user. Each call is one outbound
// send; implementations must not retry.
type MessageSender interface {
	// SendButtonPrompt sends the UG/PG program buttons.
	SendButtonPrompt(ctx context.Context, to string) error

	// SendUGList sends the undergraduate course list.
	SendUGList(ctx context.Context, to string) error

	// SendPGList sends the postgraduate course list.
	SendPGList(ctx context.Context, to string) error

	// SendText sends a plain text reply.
	SendText(ctx context.Context, to, body string) error
}
