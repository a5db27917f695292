// Package metadata turns raw database metadata into the canonical
// model.TableModel. It is the only package that talks to the database;
// the generators downstream only ever see the finished model.
package metadata

import (
	"context"

	"github.com/codehub-rony/ldproxy-config-generator/internal/model"
)

// Source is the metadata contract the orchestrator builds the table model
// from. Implementations wrap one owned database connection; Close releases
// it and is safe to call more than once.
type Source interface {
	// ListTables returns the names of all base tables in the schema,
	// in the database's enumeration order. A missing schema is reported
	// as a not-found error, an unreachable one as a connection error.
	ListTables(ctx context.Context, schema string) ([]string, error)

	// BuildModel introspects the requested tables and assembles the
	// TableModel. Missing tables are collected and reported together in a
	// single error rather than aborting on the first. A column whose
	// native type has no logical mapping fails immediately, naming the
	// offending table and column.
	//
	// Tables without a primary key are excluded from the model and
	// recorded in TableModel.Skipped — never silently dropped.
	BuildModel(ctx context.Context, schema string, tables []string) (*model.TableModel, error)

	// Close releases the underlying connection. Idempotent.
	Close()
}
