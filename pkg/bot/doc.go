// Package bot implements the Slack-facing behavior of acrobot: it
// verifies inbound webhook requests, interprets the "/acronym"
// [slash command], renders responses and the add-acronym [modal],
// and handles [Events API] mentions - over HTTP webhooks and
// [Socket Mode].
//
// [slash command]: https://docs.slack.dev/interactivity/implementing-slash-commands
// [modal]: https://docs.slack.dev/surfaces/modals
// [Events API]: https://docs.slack.dev/apis/events-api
// [Socket Mode]: https://docs.slack.dev/apis/events-api/comparing-http-socket-mode
package bot
