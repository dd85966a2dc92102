// Package credentials persists the single session token issued by the
// backend.
//
// Two implementations are provided: SQLiteStore keeps the token in the local
// metadata table (optionally sealed with a passphrase-derived key), and
// MemoryStore keeps it for the lifetime of the process only.
package credentials

import (
	"context"
	"errors"
)

// ErrSealed is returned when a sealed token is found but no passphrase is
// configured to open it.
var ErrSealed = errors.New("stored token is sealed")

// Store reads and writes the session token. Get returns "" when no token is
// stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
