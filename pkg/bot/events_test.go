package bot

import (
	"fmt"
	"testing"

	"github.com/tzrikka/acrobot/pkg/store"
)

func TestHandleEventURLVerification(t *testing.T) {
	b := &Bot{store: store.NewMemory()}
	body := []byte(`{"type":"url_verification","token":"t","challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"}`)

	challenge, err := b.HandleEvent(t.Context(), body)
	if err != nil {
		t.Fatalf("HandleEvent() error: %v", err)
	}
	if want := "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"; challenge != want {
		t.Errorf("HandleEvent() challenge = %q, want %q", challenge, want)
	}
}

func TestHandleEventMalformedPayload(t *testing.T) {
	b := &Bot{store: store.NewMemory()}

	if _, err := b.HandleEvent(t.Context(), []byte("not json")); err == nil {
		t.Error("HandleEvent() with malformed payload: got nil error")
	}
}

func mentionEvent(text string) []byte {
	return fmt.Appendf(nil, `{
		"type": "event_callback",
		"event": {
			"type": "app_mention",
			"user": "U123",
			"text": %q,
			"channel": "C123",
			"ts": "1718000000.000100"
		}
	}`, text)
}

func TestHandleEventAppMention(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantMessages int
	}{
		{
			name:         "mention_with_term",
			text:         "<@U0LAN0Z89> fy",
			wantMessages: 1,
		},
		{
			name:         "mention_with_unknown_term",
			text:         "<@U0LAN0Z89> ATO",
			wantMessages: 1,
		},
		{
			name:         "mention_without_term",
			text:         "<@U0LAN0Z89>",
			wantMessages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeWebAPI{}
			b := &Bot{store: seededStore(t), api: api}

			if _, err := b.HandleEvent(t.Context(), mentionEvent(tt.text)); err != nil {
				t.Fatalf("HandleEvent() error: %v", err)
			}

			if len(api.messages) != tt.wantMessages {
				t.Fatalf("posted %d messages, want %d", len(api.messages), tt.wantMessages)
			}
			if api.channelIDs[0] != "C123" {
				t.Errorf("posted to channel %q, want %q", api.channelIDs[0], "C123")
			}
		})
	}
}

func TestHandleEventIgnoresUnknownEvents(t *testing.T) {
	api := &fakeWebAPI{}
	b := &Bot{store: store.NewMemory(), api: api}

	body := []byte(`{
		"type": "event_callback",
		"event": {"type": "reaction_added", "user": "U123"}
	}`)
	if _, err := b.HandleEvent(t.Context(), body); err != nil {
		t.Fatalf("HandleEvent() error: %v", err)
	}

	if len(api.messages) != 0 {
		t.Errorf("posted %d messages for an unrecognized event, want 0", len(api.messages))
	}
}
