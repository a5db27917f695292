package metadata

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/logger"
)

// fakeDB routes queries to a handler so tests can serve canned
// information_schema results without a live database.
type fakeDB struct {
	handler func(sql string, args ...any) ([][]any, error)
	closed  int
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     { f.closed++ }

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (database.Rows, error) {
	rows, err := f.handler(sql, args...)
	if err != nil {
		return nil, err
	}
	return &fakeRows{rows: rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) database.Row {
	rows, err := f.handler(sql, args...)
	if err != nil {
		return &fakeRow{err: err}
	}
	if len(rows) == 0 {
		return &fakeRow{err: io.EOF}
	}
	return &fakeRow{values: rows[0]}
}

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.rows[r.pos-1], dest)
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.values, dest)
}

func scanInto(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *int:
			*d = v.(int)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

// testLogger logs to nowhere.
func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

// matches reports whether the SQL statement contains the marker, ignoring
// whitespace differences.
func matches(sql, marker string) bool {
	return strings.Contains(strings.Join(strings.Fields(sql), " "), marker)
}
