package store

import (
	"context"
)

// Keys persisted by the client core.
const (
	KeyToken    = "token"
	KeyLanguage = "language"
	KeyCart     = "cart"
)

// Store is a durable, string-keyed key-value store scoped to one device or
// profile. Last write wins; there are no transactions.
//
// Get reports a missing key as ("", false, nil): absence is never an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
	Close() error
}
