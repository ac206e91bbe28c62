// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx,
// a helper to run functions inside a transaction, and DB, the handle
// services hold so they can both query directly and open transactions.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work executed by WithTx.
type TxFunc func(ctx context.Context, tx DBTX) error

// DB is a DBTX that can also run a TxFunc inside a transaction.
type DB interface {
	DBTX
	WithTx(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error
}

// SQLDB adapts *sql.DB to DB.
type SQLDB struct {
	*sql.DB
}

// NewSQLDB wraps db.
func NewSQLDB(db *sql.DB) *SQLDB {
	return &SQLDB{DB: db}
}

// WithTx runs fn in a transaction on the wrapped pool.
func (d *SQLDB) WithTx(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error {
	return WithTx(ctx, d.DB, opts, fn)
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
// A canceled ctx makes database/sql roll the transaction back, so fn never
// leaves a partial commit behind.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    // use tx instead of db
//	    _, err := tx.ExecContext(ctx, "UPDATE ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// ReadSnapshot is the option set for multi-statement reads that must observe
// one consistent snapshot.
var ReadSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
