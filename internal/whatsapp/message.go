package whatsapp

import (
	"github.com/garyellow/whatsapp-course-bot/internal/menu"
	"github.com/garyellow/whatsapp-course-bot/internal/stringutil"
)

// Cloud API limits (rune count)
// References: https://developers.facebook.com/docs/whatsapp/cloud-api/reference/messages
const (
	MaxTextBodyLength        = 4096 // Text message body
	MaxInteractiveBodyLength = 1024 // Body of button and list messages
	MaxButtonTitleLength     = 20   // Reply button title
	MaxReplyButtonCount      = 3    // Reply buttons per message
	MaxListButtonLength      = 20   // Text of the button that opens a list
	MaxSectionTitleLength    = 24   // List section title
	MaxRowTitleLength        = 24   // List row title
	MaxListRowCount          = 10   // Rows across all sections
)

const messagingProduct = "whatsapp"

// Outbound message types.
const (
	outboundTypeText        = "text"
	outboundTypeInteractive = "interactive"

	interactiveTypeButton = "button"
	interactiveTypeList   = "list"

	buttonTypeReply = "reply"
)

// OutboundMessage is the JSON document POSTed to the send-message endpoint.
type OutboundMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	RecipientType    string       `json:"recipient_type,omitempty"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             *Text        `json:"text,omitempty"`
	Interactive      *Interactive `json:"interactive,omitempty"`
}

// Text is a plain text body.
type Text struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url,omitempty"`
}

// Interactive is a button or list message.
type Interactive struct {
	Type   string            `json:"type"`
	Body   InteractiveBody   `json:"body"`
	Action InteractiveAction `json:"action"`
}

// InteractiveBody is the text shown above the buttons or list.
type InteractiveBody struct {
	Text string `json:"text"`
}

// InteractiveAction holds reply buttons (button messages) or the list
// opener text plus sections (list messages).
type InteractiveAction struct {
	Buttons  []Button  `json:"buttons,omitempty"`
	Button   string    `json:"button,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// Button is one reply button.
type Button struct {
	Type  string      `json:"type"`
	Reply ButtonTitle `json:"reply"`
}

// ButtonTitle is the ID/title pair echoed back in a button_reply.
type ButtonTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Section groups list rows under a title.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Row is one selectable list row; its ID is echoed back in a list_reply.
type Row struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// NewTextMessage creates a plain text message for the recipient.
// Bodies longer than the Cloud API limit are truncated.
func NewTextMessage(to, body string) *OutboundMessage {
	return &OutboundMessage{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             outboundTypeText,
		Text: &Text{
			Body: stringutil.TruncateRunes(body, MaxTextBodyLength),
		},
	}
}

// NewButtonMessage creates a reply-button message from a menu prompt.
// Extra buttons beyond the platform maximum are dropped.
func NewButtonMessage(to string, prompt menu.Prompt) *OutboundMessage {
	options := prompt.Buttons
	if len(options) > MaxReplyButtonCount {
		options = options[:MaxReplyButtonCount]
	}

	buttons := make([]Button, len(options))
	for i, opt := range options {
		buttons[i] = Button{
			Type: buttonTypeReply,
			Reply: ButtonTitle{
				ID:    opt.ID,
				Title: stringutil.TruncateRunes(opt.Title, MaxButtonTitleLength),
			},
		}
	}

	return &OutboundMessage{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             outboundTypeInteractive,
		Interactive: &Interactive{
			Type:   interactiveTypeButton,
			Body:   InteractiveBody{Text: stringutil.TruncateRunes(prompt.Body, MaxInteractiveBodyLength)},
			Action: InteractiveAction{Buttons: buttons},
		},
	}
}

// NewListMessage creates a single-section list message from a menu list.
// Extra rows beyond the platform maximum are dropped.
func NewListMessage(to string, list menu.List) *OutboundMessage {
	options := list.Rows
	if len(options) > MaxListRowCount {
		options = options[:MaxListRowCount]
	}

	rows := make([]Row, len(options))
	for i, opt := range options {
		rows[i] = Row{
			ID:    opt.ID,
			Title: stringutil.TruncateRunes(opt.Title, MaxRowTitleLength),
		}
	}

	return &OutboundMessage{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             outboundTypeInteractive,
		Interactive: &Interactive{
			Type: interactiveTypeList,
			Body: InteractiveBody{Text: stringutil.TruncateRunes(list.Body, MaxInteractiveBodyLength)},
			Action: InteractiveAction{
				Button: stringutil.TruncateRunes(list.Button, MaxListButtonLength),
				Sections: []Section{
					{
						Title: stringutil.TruncateRunes(list.SectionTitle, MaxSectionTitleLength),
						Rows:  rows,
					},
				},
			},
		},
	}
}
