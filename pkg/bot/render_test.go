package bot

import (
	"testing"

	"github.com/slack-go/slack"

	"github.com/tzrikka/acrobot/pkg/store"
)

func TestRenderMessages(t *testing.T) {
	tests := []struct {
		name             string
		msg              *slack.Msg
		wantText         string
		wantResponseType string
	}{
		{
			name:             "lookup_found_is_posted_in_channel",
			msg:              renderFound(store.Entry{Acronym: "FY", Definition: "Fiscal Year"}),
			wantText:         "*FY*: Fiscal Year",
			wantResponseType: slack.ResponseTypeInChannel,
		},
		{
			name:             "lookup_not_found_suggests_add",
			msg:              renderNotFound("FY"),
			wantText:         "Nothing for *FY* yet. Try `/acronym add` to submit one.",
			wantResponseType: slack.ResponseTypeEphemeral,
		},
		{
			name:             "deleted",
			msg:              renderDeleted("FY"),
			wantText:         "Deleted *FY*.",
			wantResponseType: slack.ResponseTypeEphemeral,
		},
		{
			name:             "nothing_to_delete",
			msg:              renderNothingToDelete("FY"),
			wantText:         "Nothing to delete: no definition for *FY*.",
			wantResponseType: slack.ResponseTypeEphemeral,
		},
		{
			name:             "usage",
			msg:              renderUsage(),
			wantText:         usageText,
			wantResponseType: slack.ResponseTypeEphemeral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.msg.Text != tt.wantText {
				t.Errorf("message text = %q, want %q", tt.msg.Text, tt.wantText)
			}
			if tt.msg.ResponseType != tt.wantResponseType {
				t.Errorf("response type = %q, want %q", tt.msg.ResponseType, tt.wantResponseType)
			}
		})
	}
}

func TestRenderApologyHidesDetails(t *testing.T) {
	msg := renderApology()
	if msg.ResponseType != slack.ResponseTypeEphemeral {
		t.Errorf("response type = %q, want ephemeral", msg.ResponseType)
	}
	// The apology must never surface internal error details.
	if msg.Text == "" || len(msg.Text) > 100 {
		t.Errorf("unexpected apology text: %q", msg.Text)
	}
}

func TestRenderAddModal(t *testing.T) {
	tests := []struct {
		name        string
		prefill     string
		channelID   string
		wantPrefill string
	}{
		{
			name:      "no_prefill",
			channelID: "C123",
		},
		{
			name:        "with_prefill",
			prefill:     "FY",
			channelID:   "C123",
			wantPrefill: "FY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modal := renderAddModal(tt.prefill, tt.channelID)

			if modal.Type != slack.VTModal {
				t.Errorf("modal type = %q, want %q", modal.Type, slack.VTModal)
			}
			if modal.CallbackID != addCallbackID {
				t.Errorf("callback ID = %q, want %q", modal.CallbackID, addCallbackID)
			}
			if modal.PrivateMetadata != tt.channelID {
				t.Errorf("private metadata = %q, want %q", modal.PrivateMetadata, tt.channelID)
			}

			if n := len(modal.Blocks.BlockSet); n != 2 {
				t.Fatalf("modal has %d blocks, want 2", n)
			}
			input, ok := modal.Blocks.BlockSet[0].(*slack.InputBlock)
			if !ok {
				t.Fatalf("first block is %T, want *slack.InputBlock", modal.Blocks.BlockSet[0])
			}
			element, ok := input.Element.(*slack.PlainTextInputBlockElement)
			if !ok {
				t.Fatalf("first input element is %T, want *slack.PlainTextInputBlockElement", input.Element)
			}
			if element.InitialValue != tt.wantPrefill {
				t.Errorf("acronym field prefill = %q, want %q", element.InitialValue, tt.wantPrefill)
			}
		})
	}
}
