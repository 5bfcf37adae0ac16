package sqlite

import (
	"context"
	"database/sql"
	"os"

	apperrors "github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/errors"
	_ "modernc.org/sqlite"
)

// Client is a read-only handle on the pathway store file. Connections are
// acquired per call and released unconditionally; the workload is
// low-frequency dashboard queries, so there is no pooling.
type Client struct {
	db *sql.DB
}

// Open opens the store file read-only. A missing file is a
// STORE_UNAVAILABLE error with the message the dashboard surfaces verbatim.
func Open(path string) (*Client, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewStoreUnavailableError("Database not found", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("Database not found", err)
	}

	return &Client{db: db}, nil
}

// DB returns the underlying database connection
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}

// Ping verifies the connection to the database
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
