// Package sqlitelog provides a SQLite-backed memory.AppendLog. Records are
// append-only and indexed by insertion order; SQLite serializes writes, so
// Append is safe for concurrent use.
package sqlitelog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hupe1980/cogniloop/memory"
	_ "modernc.org/sqlite"
)

// Log is an append-only SQLite store for long-term memory entries. The
// schema is created automatically on first use.
type Log struct {
	db *sql.DB
}

// New creates a log at the given database path.
func New(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open memory database: %w", err)
	}

	l := &Log{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate memory schema: %w", err)
	}

	return l, nil
}

// Close closes the database connection.
func (l *Log) Close() error { return l.db.Close() }

func (l *Log) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS long_term_entries (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		text      TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Append implements memory.AppendLog with a synchronous insert.
func (l *Log) Append(entry memory.LongEntry) error {
	_, err := l.db.Exec(
		`INSERT INTO long_term_entries (text, timestamp) VALUES (?, ?)`,
		entry.Text,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert long-term entry: %w", err)
	}
	return nil
}

// Tail returns the last n persisted entries in append order. Useful for
// rehydrating long-term memory inspection tooling.
func (l *Log) Tail(n int) ([]memory.LongEntry, error) {
	rows, err := l.db.Query(
		`SELECT text, timestamp FROM long_term_entries ORDER BY seq DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query long-term entries: %w", err)
	}
	defer rows.Close()

	var entries []memory.LongEntry
	for rows.Next() {
		var text, ts string
		if err := rows.Scan(&text, &ts); err != nil {
			return nil, fmt.Errorf("scan long-term entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse entry timestamp: %w", err)
		}
		entries = append(entries, memory.LongEntry{Text: text, Timestamp: parsed})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// reverse into append order, most-recent-last
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}
