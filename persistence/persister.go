// Package persistence provides optional snapshot persistence for the
// in-memory stores. The in-memory state stays canonical; after each
// successful mutation the full state is written out as JSON buckets, and
// on startup the last snapshot is loaded back. SQLite and Postgres
// backends share the same single-table layout.
package persistence

import (
	"context"
	"fmt"
	"os"

	"salestrack/models"
)

// Snapshot is the persistable state: live sales, registered users and the
// next sale ID counter. The undo stack and recent queue are runtime-only.
type Snapshot struct {
	Sales   []models.Sale `json:"sales"`
	Users   []userRecord  `json:"users"`
	Counter int64         `json:"counter"`
}

// userRecord carries the password hash, which the public User model never
// serializes.
type userRecord struct {
	Username     string      `json:"username"`
	PasswordHash string      `json:"passwordHash"`
	Role         models.Role `json:"role"`
}

// SnapshotUsers converts registry users into persistable records
func SnapshotUsers(users []models.User) []userRecord {
	out := make([]userRecord, 0, len(users))
	for _, u := range users {
		out = append(out, userRecord{Username: u.Username, PasswordHash: u.PasswordHash, Role: u.Role})
	}
	return out
}

// RestoreUsers converts persisted records back into registry users
func RestoreUsers(records []userRecord) []models.User {
	out := make([]models.User, 0, len(records))
	for _, r := range records {
		out = append(out, models.User{Username: r.Username, PasswordHash: r.PasswordHash, Role: r.Role})
	}
	return out
}

// Persister stores and reloads full state snapshots
type Persister interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (Snapshot, bool, error)
	Close() error
}

// OpenFromEnv selects a backend from the environment: DATABASE_URL (or
// the DB_* variables) picks Postgres, SALESTRACK_DB_PATH picks SQLite.
// With neither set persistence is disabled and (nil, nil) is returned.
func OpenFromEnv(ctx context.Context) (Persister, error) {
	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
		p, err := NewPostgres(ctx)
		if err != nil {
			return nil, fmt.Errorf("open postgres persistence: %w", err)
		}
		return p, nil
	}
	if path := os.Getenv("SALESTRACK_DB_PATH"); path != "" {
		p, err := NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite persistence: %w", err)
		}
		return p, nil
	}
	return nil, nil
}
