// Package mysql is the MySQL implementation of database.DB, backed by
// database/sql with the go-sql-driver.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/codehub-rony/ldproxy-config-generator/internal/database"
	"github.com/codehub-rony/ldproxy-config-generator/internal/errs"
)

// Driver is a MySQL implementation of database.DB.
type Driver struct {
	db *sql.DB
}

// New connects to MySQL using the provided Config and returns a Driver.
// It calls Ping to validate the connection before returning.
func New(ctx context.Context, cfg *database.Config) (*Driver, error) {
	if _, err := mysql.ParseDSN(cfg.DSN); err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "invalid mysql DSN", err)
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open mysql connection", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	d := &Driver{db: db}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := d.Ping(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// ParseDetails extracts the connection parameters embedded in a mysql DSN.
func ParseDetails(dsn string) (*database.ConnectionDetails, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid mysql DSN", err)
	}

	host := cfg.Addr
	port := 3306
	if h, p, err := net.SplitHostPort(cfg.Addr); err == nil {
		host = h
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}

	return &database.ConnectionDetails{
		Host:     host,
		Port:     port,
		User:     cfg.User,
		Password: cfg.Passwd,
		Database: cfg.DBName,
	}, nil
}

// --- database.DB implementation ---

// Ping verifies the database is reachable.
func (d *Driver) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return mapError(err, "ping failed")
	}
	return nil
}

// Close drains the connection pool. Safe to call more than once.
func (d *Driver) Close() {
	d.db.Close()
}

// Query executes a SQL statement that returns multiple rows.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "query failed")
	}
	return &sqlRows{rows: rows}, nil
}

// QueryRow executes a SQL statement expected to return at most one row.
func (d *Driver) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// --- database/sql type wrappers ---

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Close()                 { r.rows.Close() }
func (r *sqlRows) Err() error             { return r.rows.Err() }

// --- error mapping ---

// MySQL server error numbers that matter for introspection.
const (
	errAccessDenied   = 1044
	errBadCredentials = 1045
	errUnknownDB      = 1049
	errNoSuchTable    = 1146
)

// mapError translates go-sql-driver native errors into *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		kind := errs.ErrKindQueryFailed
		switch myErr.Number {
		case errAccessDenied, errBadCredentials:
			kind = errs.ErrKindConnectionFailed
		case errUnknownDB, errNoSuchTable:
			kind = errs.ErrKindNotFound
		}
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, myErr.Message), err)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}
