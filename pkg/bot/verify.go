package bot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	contentTypeHeader = "Content-Type"
	timestampHeader   = "X-Slack-Request-Timestamp"
	signatureHeader   = "X-Slack-Signature"

	// The maximum shift/delay that we allow between an inbound request's
	// timestamp, and our current timestamp, to defend against replay attacks.
	// See https://docs.slack.dev/authentication/verifying-requests-from-slack.
	maxDifference = 5 * time.Minute

	// Slack API implementation detail.
	// See https://docs.slack.dev/authentication/verifying-requests-from-slack.
	slackSigVersion = "v0"
)

// VerifyRequest checks the authenticity of an inbound Slack webhook
// request. It returns [http.StatusOK] if and only if the request
// passes all checks, and the HTTP status code to respond with
// otherwise. Details are reported only to the given logger, never
// to the caller of the webhook.
func VerifyRequest(l zerolog.Logger, signingSecret, wantContentType string, headers http.Header, body []byte) int {
	statusCode := checkContentTypeHeader(l, headers, wantContentType)
	if statusCode != http.StatusOK {
		return statusCode
	}

	statusCode = checkTimestampHeader(l, headers)
	if statusCode != http.StatusOK {
		return statusCode
	}

	return checkSignatureHeader(l, signingSecret, headers, body)
}

func checkContentTypeHeader(l zerolog.Logger, headers http.Header, expected string) int {
	v := headers.Get(contentTypeHeader)
	if v != expected {
		l.Warn().Str("header", contentTypeHeader).Str("got", v).Str("want", expected).
			Msg("bad request: unexpected header value")
		return http.StatusBadRequest
	}

	return http.StatusOK
}

func checkTimestampHeader(l zerolog.Logger, headers http.Header) int {
	ts := headers.Get(timestampHeader)
	if ts == "" {
		l.Warn().Str("header", timestampHeader).Msg("bad request: missing header")
		return http.StatusBadRequest
	}

	secs, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		l.Warn().Str("header", timestampHeader).Str("got", ts).
			Msg("bad request: invalid header value")
		return http.StatusBadRequest
	}

	d := time.Since(time.Unix(secs, 0))
	if d.Abs() > maxDifference {
		l.Warn().Str("header", timestampHeader).Dur("difference", d).
			Msg("bad request: stale header value")
		return http.StatusBadRequest
	}

	return http.StatusOK
}

func checkSignatureHeader(l zerolog.Logger, signingSecret string, headers http.Header, body []byte) int {
	sig := headers.Get(signatureHeader)
	if sig == "" {
		l.Warn().Str("header", signatureHeader).Msg("bad request: missing header")
		return http.StatusForbidden
	}

	if signingSecret == "" {
		l.Warn().Msg("signing secret is not configured")
		return http.StatusInternalServerError
	}

	ts := headers.Get(timestampHeader)
	if !verifySignature(l, signingSecret, ts, sig, body) {
		l.Warn().Str("signature", sig).Msg("signature verification failed")
		return http.StatusForbidden
	}

	return http.StatusOK
}

// verifySignature implements
// https://docs.slack.dev/authentication/verifying-requests-from-slack.
func verifySignature(l zerolog.Logger, signingSecret, ts, want string, body []byte) bool {
	mac := hmac.New(sha256.New, []byte(signingSecret))

	n, err := mac.Write(fmt.Appendf(nil, "%s:%s:", slackSigVersion, ts))
	if err != nil {
		l.Err(err).Msg("HMAC write error")
		return false
	}
	if n != len(ts)+4 {
		return false
	}

	if n, err := mac.Write(body); err != nil || n != len(body) {
		return false
	}

	got := fmt.Sprintf("%s=%s", slackSigVersion, hex.EncodeToString(mac.Sum(nil)))
	return hmac.Equal([]byte(got), []byte(want))
}
