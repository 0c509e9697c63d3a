package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres persists snapshots into the same bucketed state table as the
// SQLite backend, over a shared database.
type Postgres struct {
	db *sql.DB
	mu sync.Mutex
}

// NewPostgres opens the snapshot database from environment variables.
// DATABASE_URL takes precedence; otherwise the connection string is built
// from DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSLMODE.
func NewPostgres(ctx context.Context) (*Postgres, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return nil, fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}
		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Save writes the full snapshot in one transaction
func (p *Postgres) Save(ctx context.Context, snap Snapshot) (retErr error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tx, err := p.db.BeginTx(ctx, nil)
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
			`INSERT INTO state (bucket, payload) VALUES ($1, $2)
			 ON CONFLICT (bucket) DO UPDATE SET payload = EXCLUDED.payload`,
			bucket, payload); err != nil {
			return fmt.Errorf("write %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the last snapshot; the second return is false when the table
// holds no state yet.
func (p *Postgres) Load(ctx context.Context) (Snapshot, bool, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
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
func (p *Postgres) Close() error {
	return p.db.Close()
}
