// Package history keeps a SQLite-backed log of saved tree snapshots next to
// the session file, so an earlier revision can be inspected or restored.
// Snapshots are opaque JSON blobs; encoding belongs to pkg/codec.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultKeep is how many snapshots Prune retains.
const DefaultKeep = 50

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	saved_at  TIMESTAMP NOT NULL,
	node_count INTEGER NOT NULL,
	tree      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_saved_at ON snapshots(saved_at);
`

// Snapshot is one saved revision of the tree.
type Snapshot struct {
	ID        int64
	SavedAt   time.Time
	NodeCount int
	Tree      []byte
}

// Store is an append-only snapshot log in a SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the snapshot store at path.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history db: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Save appends a snapshot and returns its id.
func (s *Store) Save(tree []byte, nodeCount int) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO snapshots (saved_at, node_count, tree) VALUES (?, ?, ?)`,
		time.Now().UTC(), nodeCount, tree,
	)
	if err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}
	return res.LastInsertId()
}

// Get returns one snapshot by id.
func (s *Store) Get(id int64) (Snapshot, error) {
	var snap Snapshot
	err := s.db.QueryRow(
		`SELECT id, saved_at, node_count, tree FROM snapshots WHERE id = ?`, id,
	).Scan(&snap.ID, &snap.SavedAt, &snap.NodeCount, &snap.Tree)
	if err == sql.ErrNoRows {
		return Snapshot{}, fmt.Errorf("snapshot %d not found", id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading snapshot %d: %w", id, err)
	}
	return snap, nil
}

// Latest returns the most recent snapshot. ok is false when the store is
// empty.
func (s *Store) Latest() (Snapshot, bool, error) {
	var snap Snapshot
	err := s.db.QueryRow(
		`SELECT id, saved_at, node_count, tree FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.SavedAt, &snap.NodeCount, &snap.Tree)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("loading latest snapshot: %w", err)
	}
	return snap, true, nil
}

// List returns up to limit snapshots, newest first, without their blobs.
func (s *Store) List(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, saved_at, node_count FROM snapshots ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.SavedAt, &snap.NodeCount); err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Prune deletes all but the newest keep snapshots.
func (s *Store) Prune(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}
