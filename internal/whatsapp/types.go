// Package whatsapp implements the parts of the WhatsApp Cloud API the bot
// uses: the inbound webhook envelope, the outbound message documents, and an
// HTTP client for the send-message endpoint.
package whatsapp

// Message types carried in Message.Type.
const (
	MessageTypeText        = "text"
	MessageTypeInteractive = "interactive"
)

// WebhookPayload is the top-level body Meta POSTs on each webhook delivery.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one WhatsApp Business Account.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the messages (or delivery statuses) of a change.
type ChangeValue struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

// Metadata about the receiving business phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is the sender's profile.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile has the display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// Message is an inbound user message.
type Message struct {
	From        string            `json:"from"`
	ID          string            `json:"id"`
	Timestamp   string            `json:"timestamp"`
	Type        string            `json:"type"`
	Text        *TextBody         `json:"text,omitempty"`
	Interactive *InteractiveReply `json:"interactive,omitempty"`
}

// TextBody holds a text message body.
type TextBody struct {
	Body string `json:"body"`
}

// InteractiveReply is the user's answer to a button prompt or a list.
// Exactly one of ButtonReply and ListReply is set by the platform.
type InteractiveReply struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ListReply   `json:"list_reply,omitempty"`
}

// ButtonReply carries the ID of the tapped reply button.
type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListReply carries the ID of the selected list row.
type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Status is a delivery status update for a message the bot sent.
type Status struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	RecipientID string `json:"recipient_id"`
}

// FirstMessages returns messages[0] of every change that carries messages,
// in delivery order. Later messages in the same change are ignored.
func (p *WebhookPayload) FirstMessages() []Message {
	var out []Message
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				out = append(out, change.Value.Messages[0])
			}
		}
	}
	return out
}

// CountStatuses returns how many delivery status updates the payload carries.
func (p *WebhookPayload) CountStatuses() int {
	n := 0
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			n += len(change.Value.Statuses)
		}
	}
	return n
}
