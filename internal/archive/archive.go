package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Archive appends delivered notifications to Postgres. It is a best-effort
// audit trail, not a durability guarantee: write failures are reported to
// the caller, which logs and moves on.
type Archive struct {
	db *sqlx.DB
}

// Entry is one archived notification
type Entry struct {
	ID         int64     `db:"id"`
	Topic      string    `db:"topic"`
	Message    string    `db:"message"`
	ReceivedAt time.Time `db:"received_at"`
}

// New connects to the database and ensures the notifications table exists
func New(databaseURL string) (*Archive, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	schema := `
		CREATE TABLE IF NOT EXISTS notifications (
			id          BIGSERIAL PRIMARY KEY,
			topic       TEXT NOT NULL,
			message     TEXT NOT NULL,
			received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure notifications table: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record appends one notification
func (a *Archive) Record(ctx context.Context, topic, message string) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO notifications (topic, message) VALUES ($1, $2)",
		topic, message)
	return err
}

// Recent returns the latest archived notifications, newest first
func (a *Archive) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := a.db.SelectContext(ctx, &entries,
		"SELECT * FROM notifications ORDER BY received_at DESC LIMIT $1", limit)
	return entries, err
}
