package bot

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// RunSocketMode connects to Slack over Socket Mode and dispatches
// slash commands, interaction callbacks, and events to the same
// handlers as the HTTP webhooks. This requires an app-level token,
// and doesn't require a public HTTP endpoint (no inbound requests
// means no signature verification either). This is blocking, to
// keep the bot running.
func (b *Bot) RunSocketMode(ctx context.Context) error {
	if b.client == nil {
		return errors.New("Socket Mode requires both a bot token and an app-level token")
	}

	l := zerolog.Ctx(ctx)
	sm := socketmode.New(b.client)

	go func() {
		for evt := range sm.Events {
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				l.Info().Msg("connecting to Slack over Socket Mode")
			case socketmode.EventTypeConnected:
				l.Info().Msg("connected to Slack over Socket Mode")
			case socketmode.EventTypeConnectionError:
				l.Warn().Msg("Socket Mode connection error, reconnecting")

			case socketmode.EventTypeSlashCommand:
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok || evt.Request == nil {
					continue
				}
				if msg := b.HandleCommand(ctx, cmd); msg != nil {
					sm.Ack(*evt.Request, msg)
				} else {
					sm.Ack(*evt.Request)
				}

			case socketmode.EventTypeInteractive:
				cb, ok := evt.Data.(slack.InteractionCallback)
				if !ok || evt.Request == nil {
					continue
				}
				sm.Ack(*evt.Request)
				_ = b.HandleInteraction(ctx, cb) // Errors already logged.

			case socketmode.EventTypeEventsAPI:
				event, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok || evt.Request == nil {
					continue
				}
				sm.Ack(*evt.Request)
				b.handleEventsAPIEvent(ctx, event)
			}
		}
	}()

	return sm.RunContext(ctx)
}
