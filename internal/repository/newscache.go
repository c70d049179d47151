package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// NewsCacheFile is the cache database location relative to the data root
const NewsCacheFile = ".cache/news.db"

// NewsCache keeps the last aggregated headlines of each election in SQLite
type NewsCache struct {
	db *sql.DB
}

// NewNewsCache opens (or creates) the cache database at path.
// ":memory:" gives a throwaway cache.
func NewNewsCache(path string) (*NewsCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// SQLite works best with single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	c := &NewsCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *NewsCache) migrate() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS news_cache (
		election_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`)
	return err
}

// Close closes the database connection
func (c *NewsCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// GetNews returns the cached payload of an election and when it was fetched
func (c *NewsCache) GetNews(ctx context.Context, electionID string) ([]byte, time.Time, error) {
	var payload string
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM news_cache WHERE election_id = ?`, electionID,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	return []byte(payload), time.UnixMilli(fetchedAt), nil
}

// PutNews replaces the cached payload of an election
func (c *NewsCache) PutNews(ctx context.Context, electionID string, payload []byte, fetchedAt time.Time) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO news_cache (election_id, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(election_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		electionID, string(payload), fetchedAt.UnixMilli(),
	)
	return err
}
