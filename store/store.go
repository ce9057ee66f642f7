// Package store keeps a collection of named source trees in a SQLite
// database, so that trees imported from many files can be exported
// together later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/supertree-toolkit/stk/newick"
	"github.com/supertree-toolkit/stk/treeset"
)

var (
	// ErrNotFound is returned when no tree has the requested name.
	ErrNotFound = errors.New("tree not found")

	// ErrExists is returned when a tree name is already taken.
	ErrExists = errors.New("tree already exists")
)

// Record is a stored tree.
type Record struct {
	ID        string
	Name      string
	Newick    string
	Origin    string
	CreatedAt time.Time
}

// Tree parses the stored Newick string.
func (r *Record) Tree() (*newick.Tree, error) {
	return newick.Parse(r.Newick)
}

// Store is a tree collection backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating it if need be) the collection at `path` and brings
// its schema up to date. Use ":memory:" for a throwaway collection. A nil
// logger discards everything.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// Every connection to ":memory:" would get its own database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s := New(db, logger)
	s.path = path
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	s.logger.Debug("opened tree store", "path", path)
	return s, nil
}

// New wraps an already open database. The schema is assumed to be up to
// date.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{db: db, logger: logger}
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put stores a single tree given as Newick text. The text is parsed and
// stored in canonical form.
func (s *Store) Put(ctx context.Context, name, text, origin string) (*Record, error) {
	tree, err := newick.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("tree '%s': %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := insert(ctx, tx, name, tree, origin)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	s.logger.Debug("stored tree", "name", name, "id", rec.ID)
	return rec, nil
}

// PutSet stores every tree of the set, in order, in a single transaction.
// Either all trees are stored or none are.
func (s *Store) PutSet(ctx context.Context, set *treeset.Set, origin string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, nt := range set.All() {
		if _, err := insert(ctx, tx, nt.Name, nt.Tree, origin); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	s.logger.Debug("stored trees", "count", set.Len(), "origin", origin)
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, name string, tree *newick.Tree, origin string) (*Record, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trees WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tree: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}

	rec := &Record{
		ID:        uuid.New().String(),
		Name:      name,
		Newick:    newick.Format(tree),
		Origin:    origin,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO trees (id, name, newick, origin, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Newick, rec.Origin, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store tree '%s': %w", name, err)
	}
	return rec, nil
}

// Get returns the tree called `name`.
func (s *Store) Get(ctx context.Context, name string) (*Record, error) {
	rec := &Record{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, newick, origin, created_at FROM trees WHERE name = ?`,
		name,
	).Scan(&rec.ID, &rec.Name, &rec.Newick, &rec.Origin, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}
	return rec, nil
}

// Delete removes the tree called `name`.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trees WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete tree: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete tree: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.logger.Debug("deleted tree", "name", name)
	return nil
}

// List returns every stored tree in insertion order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, newick, origin, created_at FROM trees ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trees: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Newick, &rec.Origin,
			&rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tree: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Load returns every stored tree as a set, in insertion order.
func (s *Store) Load(ctx context.Context) (*treeset.Set, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	set := &treeset.Set{}
	for _, rec := range recs {
		tree, err := rec.Tree()
		if err != nil {
			return nil, fmt.Errorf("stored tree '%s': %w", rec.Name, err)
		}
		if err := set.Add(rec.Name, tree); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Count returns the number of stored trees.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trees: %w", err)
	}
	return n, nil
}
