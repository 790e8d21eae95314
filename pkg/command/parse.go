// Package command interprets the text that users type after the
// bot's slash command. It is pure and free of Slack vocabulary.
package command

import (
	"strings"

	"github.com/tzrikka/acrobot/pkg/store"
)

// Kind classifies the user's intent.
type Kind int

const (
	// Help is empty input: reply with a usage hint, don't look anything up.
	Help Kind = iota
	// Usage is a recognized but incomplete sub-command ("delete" without a term).
	Usage
	// Lookup is the default: the entire input is a term to look up.
	Lookup
	// Add opens the submission form, optionally prefilled with a term.
	Add
	// Delete removes the definition of the given term.
	Delete
)

func (k Kind) String() string {
	switch k {
	case Help:
		return "help"
	case Usage:
		return "usage"
	case Lookup:
		return "lookup"
	case Add:
		return "add"
	case Delete:
		return "delete"
	}
	return "unknown"
}

// Intent is the parsed form of a slash command's text.
type Intent struct {
	Kind Kind
	// Term is normalized with [store.Normalize]. It is empty for
	// [Help] and [Usage], and optional for [Add] (form prefill).
	Term string
}

// Parse interprets the raw text following the slash command. The
// sub-command keywords "add" and "delete" are matched case-insensitively,
// anything else is a lookup of the whole remaining text as one term.
func Parse(text string) Intent {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Intent{Kind: Help}
	}

	switch strings.ToLower(fields[0]) {
	case "add":
		i := Intent{Kind: Add}
		if len(fields) > 1 {
			i.Term = store.Normalize(fields[1])
		}
		return i
	case "delete":
		if len(fields) < 2 {
			return Intent{Kind: Usage}
		}
		return Intent{Kind: Delete, Term: store.Normalize(fields[1])}
	}

	return Intent{Kind: Lookup, Term: store.Normalize(text)}
}
