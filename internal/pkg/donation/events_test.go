package donation

import (
	"errors"
	"testing"
)

func TestParseWebhookEvent_Settlement(t *testing.T) {
	raw := []byte(`{"type":"Settled","invoiceId":"abc123"}`)
	event, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.IsSettlement() {
		t.Fatalf("expected Settled to be a settlement event")
	}
	if event.IsVoting() {
		t.Fatalf("expected no voting metadata")
	}
	if event.InvoiceID != "abc123" {
		t.Fatalf("InvoiceID = %q, want abc123", event.InvoiceID)
	}
}

func TestParseWebhookEvent_EventTypes(t *testing.T) {
	tests := []struct {
		eventType    string
		isSettlement bool
	}{
		{eventType: "Settled", isSettlement: true},
		{eventType: "InvoiceSettled", isSettlement: true},
		{eventType: "Charge", isSettlement: false},
		{eventType: "InvoiceCreated", isSettlement: false},
		{eventType: "", isSettlement: false},
	}

	for _, tt := range tests {
		event := &WebhookEvent{Type: tt.eventType}
		if got := event.IsSettlement(); got != tt.isSettlement {
			t.Fatalf("IsSettlement(%q) = %v, want %v", tt.eventType, got, tt.isSettlement)
		}
	}
}

func TestParseWebhookEvent_VotingStringIDs(t *testing.T) {
	raw := []byte(`{
		"type": "Settled",
		"invoiceId": "inv42",
		"metadata": {
			"type": "Bitcoin Voting",
			"optionId": "2",
			"option": "Yes",
			"pollId": "7"
		}
	}`)
	event, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !event.IsVoting() {
		t.Fatalf("expected voting metadata to be recognized")
	}
	if got, _ := event.Metadata.OptionID.Uint(); got != 2 {
		t.Fatalf("OptionID = %d, want 2", got)
	}
	if got, _ := event.Metadata.PollID.Uint(); got != 7 {
		t.Fatalf("PollID = %d, want 7", got)
	}
	if event.Metadata.Option != "Yes" {
		t.Fatalf("Option = %q, want Yes", event.Metadata.Option)
	}
}

func TestParseWebhookEvent_VotingNumericIDs(t *testing.T) {
	raw := []byte(`{
		"type": "InvoiceSettled",
		"invoiceId": "inv43",
		"metadata": {
			"type": "Bitcoin Voting",
			"optionId": 3,
			"option": "No",
			"pollId": 7
		}
	}`)
	event, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := event.Metadata.OptionID.Uint(); got != 3 {
		t.Fatalf("OptionID = %d, want 3", got)
	}
}

func TestParseWebhookEvent_IncompleteVotingMetadata(t *testing.T) {
	cases := []string{
		`{"type":"Settled","invoiceId":"inv1","metadata":{"type":"Bitcoin Voting","option":"Yes","pollId":"7"}}`,
		`{"type":"Settled","invoiceId":"inv1","metadata":{"type":"Bitcoin Voting","optionId":"2","pollId":"7"}}`,
		`{"type":"Settled","invoiceId":"inv1","metadata":{"type":"Bitcoin Voting","optionId":"2","option":"Yes"}}`,
		`{"type":"Settled","invoiceId":"","metadata":{"type":"Bitcoin Voting","optionId":"2","option":"Yes","pollId":"7"}}`,
	}

	for _, raw := range cases {
		if _, err := ParseWebhookEvent([]byte(raw)); !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("expected ErrMalformedEvent for %s, got %v", raw, err)
		}
	}
}

func TestParseWebhookEvent_OtherMetadataIsIgnored(t *testing.T) {
	// A non-voting metadata object must not trigger voting validation.
	raw := []byte(`{"type":"Settled","invoiceId":"inv1","metadata":{"type":"Something Else"}}`)
	event, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.IsVoting() {
		t.Fatalf("expected non-voting metadata to be ignored")
	}
}

func TestParseWebhookEvent_InvalidJSON(t *testing.T) {
	if _, err := ParseWebhookEvent([]byte(`{not json`)); !errors.Is(err, ErrMalformedEvent) {
		t.Fatalf("expected ErrMalformedEvent, got %v", err)
	}
}

func TestFlexibleID_Uint(t *testing.T) {
	tests := []struct {
		in      FlexibleID
		want    uint
		wantErr bool
	}{
		{in: "7", want: 7},
		{in: "0", want: 0},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		got, err := tt.in.Uint()
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Uint(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Uint(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Uint(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
