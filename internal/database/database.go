// Package database defines the engine-agnostic contract the metadata source
// uses to talk to a relational database. The postgres and mysql subpackages
// provide the drivers; everything above this package depends only on the
// interfaces here and never on a driver directly.
package database

import "context"

// DB is the read-only connection contract all drivers must implement.
// The generator only ever introspects — it never mutates the source database.
//
// A DB is owned by exactly one orchestrator instance and must not be shared
// between two concurrently running orchestrators.
type DB interface {
	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the connection pool.
	// It is safe to call more than once.
	Close()

	// Query executes a SQL statement that returns multiple rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// QueryRow executes a SQL statement that returns at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Rows is an abstraction over a database result set.
// Callers must always call Close() when done, even on error.
type Rows interface {
	// Next advances to the next row.
	// Returns false when no more rows exist or on error.
	Next() bool

	// Scan copies the current row's columns into the provided destinations.
	Scan(dest ...any) error

	// Close releases resources held by the result set.
	Close()

	// Err returns any error encountered during iteration.
	Err() error
}

// Row is an abstraction over a single database row.
type Row interface {
	Scan(dest ...any) error
}
