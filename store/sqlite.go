package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hupe1980/agentwire/core"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements core.MessageStore backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ core.MessageStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at dsn and applies the
// schema migrations.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS threads (
			thread_id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			thread_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (thread_id) REFERENCES threads(thread_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_thread ON messages(thread_id, created_at)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// SaveMessage appends one message to the thread, creating the thread row on
// first use.
func (s *SQLiteStore) SaveMessage(ctx context.Context, threadID, role, content string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO threads (thread_id) VALUES (?)`, threadID); err != nil {
		return fmt.Errorf("ensure thread: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (message_id, thread_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		core.NewID(), threadID, role, content, time.Now().UTC()); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages returns the thread's messages in insertion order.
func (s *SQLiteStore) ListMessages(ctx context.Context, threadID string) ([]core.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, content FROM messages WHERE thread_id = ? ORDER BY created_at, rowid`, threadID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := []core.Message{}
	for rows.Next() {
		var m core.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
