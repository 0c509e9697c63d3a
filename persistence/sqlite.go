package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	bucketSales   = "sales"
	bucketUsers   = "users"
	bucketCounter = "counter"
)

// SQLite persists snapshots into a single state table keyed by bucket,
// each payload a JSON blob.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (creating if needed) the snapshot database at path
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Save writes the full snapshot in one transaction
func (s *SQLite) Save(ctx context.Context, snap Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	buckets := map[string]any{
		bucketSales:   snap.Sales,
		bucketUsers:   snap.Users,
		bucketCounter: snap.Counter,
	}
	for bucket, value := range buckets {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state (bucket, payload) VALUES (?, ?)
			 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			bucket, payload); err != nil {
			return fmt.Errorf("write %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the last snapshot; the second return is false when the
// database holds no state yet.
func (s *SQLite) Load(ctx context.Context) (Snapshot, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snap := Snapshot{}
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return Snapshot{}, false, fmt.Errorf("scan: %w", err)
		}
		found = true
		switch bucket {
		case bucketSales:
			if err := json.Unmarshal(payload, &snap.Sales); err != nil {
				return Snapshot{}, false, fmt.Errorf("decode sales: %w", err)
			}
		case bucketUsers:
			if err := json.Unmarshal(payload, &snap.Users); err != nil {
				return Snapshot{}, false, fmt.Errorf("decode users: %w", err)
			}
		case bucketCounter:
			if err := json.Unmarshal(payload, &snap.Counter); err != nil {
				return Snapshot{}, false, fmt.Errorf("decode counter: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, false, fmt.Errorf("iterate state: %w", err)
	}
	return snap, found, nil
}

// Close releases the database handle
func (s *SQLite) Close() error {
	return s.db.Close()
}
