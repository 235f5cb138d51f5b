package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/nhle/team-tracker/internal/logging"
	"github.com/nhle/team-tracker/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode and foreign keys, and runs any pending schema migrations.
// A nil logger discards log output.
func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// One connection: the store is single-writer, and an in-memory
	// database only lives as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:  db,
		log: logging.OrNop(log).Named("store"),
		now: func() time.Time { return time.Now().UTC() },
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
		s.log.Info("applied migration", zap.Int("version", m.version))
	}

	return nil
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Storage(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Storage(op, fmt.Errorf("committing transaction: %w", err))
	}
	return nil
}

// classify maps a driver error onto the model error kinds. Errors that
// already carry a kind pass through unchanged.
func classify(op string, err error) error {
	var kindErr *model.Error
	if errors.As(err, &kindErr) {
		return err
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &model.Error{Kind: model.ErrDuplicate, Op: op, Err: err}
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_NOTNULL,
			sqlite3.SQLITE_CONSTRAINT_CHECK:
			return &model.Error{Kind: model.ErrValidation, Op: op, Err: err}
		}
		// Primary code only, when extended codes are not reported.
		if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			if strings.Contains(se.Error(), "UNIQUE") {
				return &model.Error{Kind: model.ErrDuplicate, Op: op, Err: err}
			}
			return &model.Error{Kind: model.ErrValidation, Op: op, Err: err}
		}
	}

	return model.Storage(op, err)
}

// getOne loads a single row into T. It returns (nil, nil) when no row matches.
func getOne[T any](ctx context.Context, q sqlx.QueryerContext, op, query string, args ...any) (*T, error) {
	var v T
	err := sqlx.GetContext(ctx, q, &v, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.Storage(op, err)
	}
	return &v, nil
}

// getMany loads all matching rows into a slice of T.
func getMany[T any](ctx context.Context, q sqlx.QueryerContext, op, query string, args ...any) ([]T, error) {
	var out []T
	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, model.Storage(op, err)
	}
	return out, nil
}

// mustGet is getOne for write paths: a missing row is model.ErrNotFound.
func mustGet[T any](ctx context.Context, tx *sqlx.Tx, op, table, entity string, id int64) (*T, error) {
	v, err := getOne[T](ctx, tx, op, "SELECT * FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, model.NotFound(op, entity, id)
	}
	return v, nil
}

// insertRow executes an INSERT and reads the new row back inside tx.
func insertRow[T any](ctx context.Context, tx *sqlx.Tx, op, table, query string, args ...any) (*T, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, model.Storage(op, fmt.Errorf("reading inserted id: %w", err))
	}
	return mustGet[T](ctx, tx, op, table, table, id)
}

// deleteRow removes a row by id and returns it as it was before deletion.
func deleteRow[T any](ctx context.Context, s *SQLiteStore, op, table, entity string, id int64) (*T, error) {
	var deleted *T
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		v, err := mustGet[T](ctx, tx, op, table, entity, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id); err != nil {
			return err
		}
		deleted = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// exists reports whether a row with the given id belongs to userID.
func exists(ctx context.Context, tx *sqlx.Tx, table string, id, userID int64) (bool, error) {
	var n int
	err := tx.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM "+table+" WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
