package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/tzrikka/acrobot/pkg/command"
	"github.com/tzrikka/acrobot/pkg/store"
)

// webAPI is the subset of Slack's Web API that the bot calls.
// It is satisfied by [slack.Client], and by fakes in tests.
type webAPI interface {
	OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error)
	PostEphemeralContext(ctx context.Context, channelID, userID string, options ...slack.MsgOption) (string, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Config contains the bot's Slack credentials. The app-level
// token is optional, and enables Socket Mode (see [Bot.RunSocketMode]).
type Config struct {
	BotToken string
	AppToken string
}

// Bot wires the command parser, the acronym store, and the response
// renderer. It is stateless across calls, except for the store's
// underlying persistent medium, so a single instance may serve
// concurrent requests.
type Bot struct {
	store  store.Store
	api    webAPI
	client *slack.Client // Nil in tests, required for Socket Mode.
}

// New initializes a [Bot] on top of the given acronym store.
func New(cfg Config, s store.Store) *Bot {
	b := &Bot{store: s}

	if cfg.BotToken != "" {
		opts := []slack.Option{}
		if cfg.AppToken != "" {
			opts = append(opts, slack.OptionAppLevelToken(cfg.AppToken))
		}
		b.client = slack.New(cfg.BotToken, opts...)
		b.api = b.client
	}

	return b
}

// HandleCommand processes a single invocation of the slash command,
// and returns the message to respond with immediately. A nil message
// means an empty HTTP 200 response: the outcome was (or will be)
// delivered out-of-band, e.g. as a modal.
//
// Every failure is converted into a user-safe message, so this
// function never leaks internal details to the chat surface.
func (b *Bot) HandleCommand(ctx context.Context, cmd slack.SlashCommand) *slack.Msg {
	intent := command.Parse(cmd.Text)
	l := zerolog.Ctx(ctx).With().
		Str("user_id", cmd.UserID).
		Str("intent", intent.Kind.String()).
		Str("term", intent.Term).
		Logger()
	l.Info().Msg("handling slash command")

	switch intent.Kind {
	case command.Help, command.Usage:
		return renderUsage()

	case command.Lookup:
		e, err := b.store.Get(ctx, intent.Term)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return renderNotFound(intent.Term)
		case err != nil:
			l.Error().Stack().Err(err).Msg("lookup failed")
			return renderApology()
		}
		return renderFound(e)

	case command.Add:
		if b.api == nil {
			l.Error().Msg("can't open modal: Slack client not configured")
			return renderApology()
		}
		modal := renderAddModal(intent.Term, cmd.ChannelID)
		if _, err := b.api.OpenViewContext(ctx, cmd.TriggerID, modal); err != nil {
			l.Error().Stack().Err(err).Msg("failed to open add-acronym modal")
			return renderApology()
		}
		return nil

	case command.Delete:
		err := b.store.Delete(ctx, intent.Term)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return renderNothingToDelete(intent.Term)
		case err != nil:
			l.Error().Stack().Err(err).Msg("delete failed")
			return renderApology()
		}
		return renderDeleted(intent.Term)
	}

	return renderUsage()
}

// HandleInteraction processes interaction callbacks. The only one the
// bot expects is the submission of its add-acronym modal: it persists
// the new entry, and then confirms with an ephemeral message in the
// channel where the slash command was invoked. Unrelated callbacks
// are acknowledged and ignored.
func (b *Bot) HandleInteraction(ctx context.Context, cb slack.InteractionCallback) error {
	if cb.Type != slack.InteractionTypeViewSubmission || cb.View.CallbackID != addCallbackID {
		zerolog.Ctx(ctx).Debug().Str("type", string(cb.Type)).
			Str("callback_id", cb.View.CallbackID).
			Msg("ignoring unrecognized interaction callback")
		return nil
	}

	if cb.View.State == nil {
		zerolog.Ctx(ctx).Warn().Msg("ignoring modal submission without state values")
		return nil
	}

	values := cb.View.State.Values
	e := store.Entry{
		Acronym:    store.Normalize(values[termBlockID][termActionID].Value),
		Definition: strings.TrimSpace(values[definitionBlockID][definitionActionID].Value),
		AddedBy:    cb.User.ID,
		AddedAt:    time.Now().UTC(),
	}

	l := zerolog.Ctx(ctx).With().Str("user_id", e.AddedBy).Str("term", e.Acronym).Logger()

	// Slack enforces that input blocks are filled, but don't
	// rely on that: an empty key or definition is never saved.
	if e.Acronym == "" || e.Definition == "" {
		l.Warn().Msg("ignoring modal submission with empty fields")
		return nil
	}

	if err := b.store.Put(ctx, e); err != nil {
		l.Error().Stack().Err(err).Msg("failed to save acronym")
		b.postEphemeral(ctx, cb.View.PrivateMetadata, e.AddedBy, renderApology().Text)
		return err
	}

	l.Info().Msg("saved acronym definition")
	b.postEphemeral(ctx, cb.View.PrivateMetadata, e.AddedBy, renderSaved(e))
	return nil
}

// postEphemeral sends a message that only the given user sees. The
// channel may be empty (e.g. the slash command was invoked from a
// DM that the bot isn't part of), in which case it's skipped.
func (b *Bot) postEphemeral(ctx context.Context, channelID, userID, text string) {
	if channelID == "" || b.api == nil {
		return
	}

	_, err := b.api.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("channel_id", channelID).
			Msg("failed to post ephemeral message")
	}
}
