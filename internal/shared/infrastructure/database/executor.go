package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned when a query expected to return a row returns none.
var ErrNoRows = errors.New("no rows in result set")

// IsNoRows reports whether err means "no row", for either driver.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, ErrNoRows)
}

// Row is a single result row; satisfied by pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result cursor.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result is the outcome of an Exec.
type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// Executor runs statements against a connection or a transaction.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction is an Executor that can be committed or rolled back.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is a database handle that can open transactions.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
	Ping(ctx context.Context) error
	Driver() Driver
}

// boundExecutor rebinds '?' placeholders before delegating.
type boundExecutor struct {
	exec   Executor
	driver Driver
}

// Bind wraps exec so that queries written with '?' placeholders run on
// driver unchanged.
func Bind(exec Executor, driver Driver) Executor {
	if driver != DriverPostgres {
		return exec
	}
	return &boundExecutor{exec: exec, driver: driver}
}

// ContextExecutor returns the transaction in ctx, or conn, with placeholders bound
// for conn's driver. Repositories use it for every statement.
func ContextExecutor(ctx context.Context, conn Connection) Executor {
	return Bind(ExecutorFromContext(ctx, conn), conn.Driver())
}

func (b *boundExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return b.exec.Exec(ctx, Rebind(b.driver, query), args...)
}

func (b *boundExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return b.exec.QueryRow(ctx, Rebind(b.driver, query), args...)
}

func (b *boundExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return b.exec.Query(ctx, Rebind(b.driver, query), args...)
}

// SQLQuerier is the part of *sql.DB and *sql.Tx that statements need.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLExecutor adapts a database/sql handle to Executor. sql.Result and
// *sql.Rows already satisfy Result and Rows.
type SQLExecutor struct {
	Q SQLQuerier
}

func (e SQLExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	return e.Q.ExecContext(ctx, query, args...)
}

func (e SQLExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return e.Q.QueryRowContext(ctx, query, args...)
}

func (e SQLExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.Q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
