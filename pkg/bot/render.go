package bot

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/tzrikka/acrobot/pkg/store"
)

// IDs used to correlate the add-form modal with its submission callback.
const (
	addCallbackID      = "add_acronym"
	termBlockID        = "term"
	termActionID       = "acronym"
	definitionBlockID  = "definition"
	definitionActionID = "definition"
)

const usageText = "Usage: `/acronym ATO`, `/acronym add [ATO]`, or `/acronym delete ATO`"

// Each render function below is a pure function of its inputs: a
// parsed intent and/or a store result, mapped to an outbound Slack
// message. Lookup hits are the only messages posted in-channel,
// everything else is visible only to the invoking user.

func renderFound(e store.Entry) *slack.Msg {
	return &slack.Msg{
		Text:         fmt.Sprintf("*%s*: %s", e.Acronym, e.Definition),
		ResponseType: slack.ResponseTypeInChannel,
	}
}

func renderNotFound(term string) *slack.Msg {
	return ephemeral(fmt.Sprintf("Nothing for *%s* yet. Try `/acronym add` to submit one.", term))
}

func renderDeleted(term string) *slack.Msg {
	return ephemeral(fmt.Sprintf("Deleted *%s*.", term))
}

func renderNothingToDelete(term string) *slack.Msg {
	return ephemeral(fmt.Sprintf("Nothing to delete: no definition for *%s*.", term))
}

func renderUsage() *slack.Msg {
	return ephemeral(usageText)
}

// renderApology hides all error details from the chat surface,
// they are reported only in the server's log.
func renderApology() *slack.Msg {
	return ephemeral("Sorry, something went wrong on my end. Please try again later.")
}

func renderSaved(e store.Entry) string {
	return fmt.Sprintf("Saved: *%s* → %s", e.Acronym, e.Definition)
}

func ephemeral(text string) *slack.Msg {
	return &slack.Msg{
		Text:         text,
		ResponseType: slack.ResponseTypeEphemeral,
	}
}

// renderAddModal builds the add-form modal view: an acronym field
// (prefilled when the user typed "add TERM") and an empty multiline
// definition field. The originating channel ID travels through the
// modal's private metadata, so the submission handler knows where
// to post its confirmation.
func renderAddModal(prefill, channelID string) slack.ModalViewRequest {
	term := slack.NewPlainTextInputBlockElement(nil, termActionID)
	term.InitialValue = prefill

	definition := slack.NewPlainTextInputBlockElement(nil, definitionActionID)
	definition.Multiline = true

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      addCallbackID,
		Title:           plainText("Add Acronym"),
		Submit:          plainText("Save"),
		Close:           plainText("Cancel"),
		PrivateMetadata: channelID,
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewInputBlock(termBlockID, plainText("Acronym (e.g., ATO)"), nil, term),
			slack.NewInputBlock(definitionBlockID, plainText("Expansion (meaning)"), nil, definition),
		}},
	}
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}
