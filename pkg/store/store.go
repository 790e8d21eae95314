package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is reported by [Store.Get] and [Store.Delete]
// when the given acronym has no saved definition.
var ErrNotFound = errors.New("acronym not found")

// Entry is a single acronym definition, together with its
// provenance. The acronym is always stored in normalized form.
type Entry struct {
	Acronym    string    `json:"acronym"`
	Definition string    `json:"definition"`
	AddedBy    string    `json:"added_by,omitempty"`
	AddedAt    time.Time `json:"added_at,omitempty"`
}

// Store is a narrow persistence interface for acronym definitions.
// Implementations must normalize keys with [Normalize], so lookups
// and mutations agree with the command parser, and must confirm
// durability before returning from mutating calls. Concurrent
// mutations of the same key are serialized by the backing medium.
type Store interface {
	// Get returns the definition of the given acronym,
	// or [ErrNotFound] if it doesn't have one.
	Get(ctx context.Context, acronym string) (Entry, error)
	// Put saves the given definition, overwriting any
	// existing one for the same acronym (last write wins).
	Put(ctx context.Context, e Entry) error
	// Delete removes the definition of the given acronym,
	// or returns [ErrNotFound] if it doesn't have one.
	Delete(ctx context.Context, acronym string) error
	// List returns all saved entries, sorted by acronym.
	List(ctx context.Context) ([]Entry, error)

	Close() error
}

// Normalize converts user input into the canonical form of acronym
// keys: trimmed and uppercased. The command parser and all [Store]
// implementations use this same function, so they always agree.
func Normalize(acronym string) string {
	return strings.ToUpper(strings.TrimSpace(acronym))
}
