package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/acrobot/pkg/bot"
)

const (
	timeout     = 3 * time.Second
	maxBodySize = 1 << 20 // 1 MiB.

	formContentType = "application/x-www-form-urlencoded"
	jsonContentType = "application/json"
)

type httpServer struct {
	httpPort      int
	signingSecret string
	bot           *bot.Bot
}

func newHTTPServer(cmd *cli.Command, b *bot.Bot) *httpServer {
	return &httpServer{
		httpPort:      cmd.Int("http-port"),
		signingSecret: cmd.String("slack-signing-secret"),
		bot:           b,
	}
}

// run starts an HTTP server to expose the bot's Slack webhooks.
// This is blocking, to keep the bot running.
func (s *httpServer) run() error {
	server := &http.Server{
		Addr:         net.JoinHostPort("", strconv.Itoa(s.httpPort)),
		Handler:      s.routes(),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}

	log.Info().Msgf("HTTP server listening on port %d", s.httpPort)
	err := server.ListenAndServe()
	if err != nil {
		log.Err(err).Send()
		return err
	}

	return nil
}

func (s *httpServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/command", s.commandHandler)
	mux.HandleFunc("POST /slack/interactive", s.interactionHandler)
	mux.HandleFunc("POST /slack/events", s.eventHandler)
	return mux
}

// commandHandler processes "/acronym" slash command invocations. The
// response is either an immediate JSON message, or an empty HTTP 200
// when the bot responds out-of-band (i.e. by opening a modal).
// See https://docs.slack.dev/interactivity/implementing-slash-commands.
func (s *httpServer) commandHandler(w http.ResponseWriter, r *http.Request) {
	l, body, ok := s.acceptRequest(w, r, formContentType)
	if !ok {
		// Logging and HTTP status code setting already done in [acceptRequest].
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		l.Warn().Err(err).Msg("bad request: malformed slash command payload")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := s.bot.HandleCommand(l.WithContext(r.Context()), cmd)
	if msg == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", jsonContentType)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		l.Err(err).Msg("failed to encode response message")
	}
}

// interactionHandler processes interaction callbacks, i.e. submissions
// of the bot's add-acronym modal. Slack expects a quick HTTP 200 here;
// outcomes are reported to the user with ephemeral messages. See
// https://docs.slack.dev/interactivity/handling-user-interaction.
func (s *httpServer) interactionHandler(w http.ResponseWriter, r *http.Request) {
	l, body, ok := s.acceptRequest(w, r, formContentType)
	if !ok {
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	payload := r.FormValue("payload")
	if payload == "" {
		l.Warn().Msg("bad request: missing interaction payload")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cb := slack.InteractionCallback{}
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		l.Warn().Err(err).Msg("bad request: malformed interaction payload")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Errors are already logged and reported to the user by the bot.
	_ = s.bot.HandleInteraction(l.WithContext(r.Context()), cb)
	w.WriteHeader(http.StatusOK)
}

// eventHandler processes Events API notifications: URL verification
// handshakes, and app mentions. See https://docs.slack.dev/apis/events-api.
func (s *httpServer) eventHandler(w http.ResponseWriter, r *http.Request) {
	l, body, ok := s.acceptRequest(w, r, jsonContentType)
	if !ok {
		return
	}

	challenge, err := s.bot.HandleEvent(l.WithContext(r.Context()), body)
	if err != nil {
		l.Warn().Err(err).Send()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if challenge != "" {
		w.Header().Add("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge))
		return // [http.StatusOK] already written by "w.Write".
	}

	w.WriteHeader(http.StatusOK)
}

// acceptRequest reads and authenticates an inbound webhook request:
// expected content type, timestamp freshness, and HMAC signature.
// When it reports false, it has already logged the reason and set
// the HTTP response status code.
func (s *httpServer) acceptRequest(w http.ResponseWriter, r *http.Request, wantContentType string) (zerolog.Logger, []byte, bool) {
	defer r.Body.Close()

	l := log.With().Str("http_method", r.Method).Str("url_path", r.URL.EscapedPath()).
		Str("request_id", shortuuid.New()).Logger()
	l.Info().Msg("received HTTP request")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request body")
		w.WriteHeader(http.StatusBadRequest)
		return l, nil, false
	}

	statusCode := bot.VerifyRequest(l, s.signingSecret, wantContentType, r.Header, body)
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
		return l, nil, false
	}

	return l, body, true
}
