package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an operation references a token that has no
// persisted session record.
var ErrNotFound = errors.New("session: not found")

// Session is the persisted record behind a token. The delivered set lives
// alongside it and only ever grows until the session is deleted whole.
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists per-token delivered-question state. It is the only mutable
// shared resource in the service; implementations must keep AppendDelivered
// atomic per token so concurrent selections never lose an update.
type Store interface {
	// Create persists an empty session under a freshly generated unique
	// token and returns the token.
	Create(ctx context.Context) (string, error)

	// Exists reports whether a record for token is currently persisted.
	Exists(ctx context.Context, token string) (bool, error)

	// Delivered returns the question ids already delivered to token.
	// Returns ErrNotFound if the token has no record.
	Delivered(ctx context.Context, token string) ([]string, error)

	// AppendDelivered atomically unions ids into the token's delivered set.
	// Returns ErrNotFound if the token has no record.
	AppendDelivered(ctx context.Context, token string, ids []string) error

	// List enumerates all persisted tokens. Corrupted or unrelated
	// persisted artifacts are skipped, never fatal to the listing.
	List(ctx context.Context) ([]string, error)

	// Delete removes the record if present and reports whether it existed.
	Delete(ctx context.Context, token string) (bool, error)
}
