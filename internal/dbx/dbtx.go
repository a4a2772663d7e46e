// Package dbx holds the database handle abstraction shared by SQL-backed
// components.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the SQLite store.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
