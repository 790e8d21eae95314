package http

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/acrobot/pkg/bot"
	"github.com/tzrikka/acrobot/pkg/store"
)

// Start initializes acrobot's logging, storage backend, and Slack
// client, and then serves the bot - over HTTP webhooks by default,
// or over Socket Mode when an app-level token is configured.
func Start(ctx context.Context, cmd *cli.Command) error {
	initLog(cmd.Bool("dev"))
	ctx = log.Logger.WithContext(ctx)

	s, err := store.Open(cmd)
	if err != nil {
		log.Err(err).Msg("failed to initialize storage backend")
		return err
	}
	defer s.Close()

	// Fail fast on a misconfigured or unreachable backend,
	// instead of on the first user interaction.
	entries, err := s.List(ctx)
	if err != nil {
		log.Err(err).Msg("storage backend is not usable")
		return err
	}
	log.Info().Int("acronyms", len(entries)).Msg("store ready")

	b := bot.New(bot.Config{
		BotToken: cmd.String("slack-bot-token"),
		AppToken: cmd.String("slack-app-token"),
	}, s)

	if cmd.String("slack-app-token") != "" {
		return b.RunSocketMode(ctx)
	}

	return newHTTPServer(cmd, b).run()
}

// initLog initializes the logger for the acrobot server,
// based on whether it's running in development mode or not.
func initLog(devMode bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	if !devMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Caller().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05.000",
	}).With().Caller().Logger()

	log.Warn().Msg("********** DEV MODE - UNSAFE IN PRODUCTION! **********")
}
