package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/tzrikka/acrobot/pkg/store"
)

// User/bot mentions embedded in message text, e.g. "<@U12345678>".
var mentionPattern = regexp.MustCompile(`<@[^>]+>`)

// HandleEvent processes an Events API request body. It returns a
// non-empty challenge string for Slack URL verification handshakes
// (https://docs.slack.dev/reference/events/url_verification), which
// the webhook must echo back as the response body.
func (b *Bot) HandleEvent(ctx context.Context, body []byte) (challenge string, err error) {
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return "", fmt.Errorf("failed to parse event payload: %w", err)
	}

	if event.Type == slackevents.URLVerification {
		resp := &slackevents.ChallengeResponse{}
		if err := json.Unmarshal(body, resp); err != nil {
			return "", fmt.Errorf("failed to parse URL verification event: %w", err)
		}
		zerolog.Ctx(ctx).Debug().Str("event_type", slackevents.URLVerification).
			Msg("replied to Slack URL verification event")
		return resp.Challenge, nil
	}

	b.handleEventsAPIEvent(ctx, event)
	return "", nil
}

// handleEventsAPIEvent dispatches inner callback events. It is shared
// by the Events API webhook and the Socket Mode runner.
func (b *Bot) handleEventsAPIEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}

	switch e := event.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		b.handleMention(ctx, e)
	default:
		zerolog.Ctx(ctx).Debug().Str("event_type", event.InnerEvent.Type).
			Msg("ignoring unrecognized event")
	}
}

// handleMention treats "@acrobot TERM" as a lookup,
// and posts the result in the mentioning channel.
func (b *Bot) handleMention(ctx context.Context, e *slackevents.AppMentionEvent) {
	term := store.Normalize(mentionPattern.ReplaceAllString(e.Text, ""))
	l := zerolog.Ctx(ctx).With().Str("user_id", e.User).Str("term", term).Logger()
	l.Info().Msg("handling app mention")

	if term == "" {
		b.postMessage(ctx, e.Channel, "Give me an acronym, e.g., `ATO`")
		return
	}

	entry, err := b.store.Get(ctx, term)
	switch {
	case errors.Is(err, store.ErrNotFound):
		b.postMessage(ctx, e.Channel, renderNotFound(term).Text)
	case err != nil:
		l.Error().Stack().Err(err).Msg("lookup failed")
		b.postMessage(ctx, e.Channel, renderApology().Text)
	default:
		b.postMessage(ctx, e.Channel, renderFound(entry).Text)
	}
}

func (b *Bot) postMessage(ctx context.Context, channelID, text string) {
	if b.api == nil || strings.TrimSpace(channelID) == "" {
		return
	}

	if _, _, err := b.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("channel_id", channelID).
			Msg("failed to post message")
	}
}
