package donation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	EventTypeSettled        = "Settled"
	EventTypeInvoiceSettled = "InvoiceSettled"

	// MetadataTypeVoting marks a settlement that pays for a poll vote
	// instead of a donation shoutout.
	MetadataTypeVoting = "Bitcoin Voting"
)

// ErrMalformedEvent is returned when a payload carries the voting
// discriminator but is missing the fields the voting path needs.
var ErrMalformedEvent = errors.New("malformed webhook event")

// FlexibleID accepts JSON string and number encodings. Coinsnap sends
// metadata ids as strings, older BTCPay-compatible senders as numbers.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleID(n.String())
		return nil
	}
	return fmt.Errorf("id must be a string or number, got %s", string(data))
}

// Uint parses the id as an unsigned integer.
func (f FlexibleID) Uint() (uint, error) {
	v, err := strconv.ParseUint(string(f), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func (f FlexibleID) String() string {
	return string(f)
}

// WebhookMetadata is the optional metadata object of a webhook payload. The
// voting fields are only meaningful when Type matches MetadataTypeVoting.
type WebhookMetadata struct {
	Type     string     `json:"type"`
	OptionID FlexibleID `json:"optionId"`
	Option   string     `json:"option"`
	PollID   FlexibleID `json:"pollId"`
}

// WebhookEvent is the parsed form of a Coinsnap webhook delivery. It is never
// persisted; settlement state lives in the shoutout and voting payment rows.
type WebhookEvent struct {
	Type      string           `json:"type"`
	InvoiceID string           `json:"invoiceId"`
	Metadata  *WebhookMetadata `json:"metadata,omitempty"`
}

// IsSettlement reports whether the event type signals a settled invoice.
// Every other type is inert and must be acknowledged without side effects.
func (e *WebhookEvent) IsSettlement() bool {
	return e.Type == EventTypeSettled || e.Type == EventTypeInvoiceSettled
}

// IsVoting reports whether the event carries the voting discriminator.
func (e *WebhookEvent) IsVoting() bool {
	return e.Metadata != nil && e.Metadata.Type == MetadataTypeVoting
}

// ParseWebhookEvent decodes a raw webhook body. A payload whose metadata
// claims to be a voting payment but lacks the option or poll fields is
// rejected with ErrMalformedEvent instead of being routed with zero values.
func ParseWebhookEvent(raw []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	event.Type = strings.TrimSpace(event.Type)
	event.InvoiceID = strings.TrimSpace(event.InvoiceID)

	if event.IsSettlement() && event.IsVoting() {
		meta := event.Metadata
		if event.InvoiceID == "" || meta.OptionID == "" || strings.TrimSpace(meta.Option) == "" || meta.PollID == "" {
			return nil, fmt.Errorf("%w: voting metadata incomplete", ErrMalformedEvent)
		}
	}

	return &event, nil
}
