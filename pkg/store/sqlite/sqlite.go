// Package sqlite provides a core.Store persisted in a SQLite database.
//
// Nodes live in a single nodes table that records each node's parent slot
// and list position; properties are stored as JSON text tagged with their
// value type. Every multi-statement mutation runs in a transaction.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leapstack-labs/sqltree/pkg/core"
)

var errNotOpen = errors.New("database not opened")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store implements core.Store on SQLite.
type Store struct {
	db     *sql.DB
	q      querier
	tx     *sql.Tx
	path   string
	logger *slog.Logger
	newID  func() core.NodeID
}

var (
	_ core.Store      = (*Store)(nil)
	_ core.Transactor = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() core.NodeID) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New wraps an open database. The schema is not touched; call Migrate for a
// fresh database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		q:      db,
		logger: slog.New(slog.DiscardHandler),
		newID:  generateID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens (creating if needed) the database at path and migrates it.
// Use ":memory:" for an in-memory database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A ":memory:" database exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := New(db, opts...)
	s.path = path
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Debug("closing database connection", "path", s.path)
	return s.db.Close()
}

// Path returns the path the store was opened with.
func (s *Store) Path() string { return s.path }

func generateID() core.NodeID {
	return core.NodeID(uuid.New().String())
}

// Update runs fn inside a database transaction. The tx store handed to fn
// shares nothing with s except the database.
func (s *Store) Update(ctx context.Context, fn func(tx core.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	if s.db == nil {
		return errNotOpen
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	txs := &Store{db: s.db, q: tx, tx: tx, path: s.path, logger: s.logger, newID: s.newID}
	if err := fn(txs); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to rollback: %w", rbErr))
		}
		s.logger.Debug("rolled back update", "error", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// atomic runs fn in the current transaction, or a new one.
func (s *Store) atomic(fn func(q querier) error) error {
	if s.tx != nil {
		return fn(s.q)
	}
	if s.db == nil {
		return errNotOpen
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Len returns the number of stored nodes.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.q.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return n, nil
}
