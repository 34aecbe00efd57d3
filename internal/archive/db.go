// Package archive provides SQLite-based match telemetry storage.
// The archive is write-only during a match: events stream in through
// the game's event sink and can be read back for post-game review.
package archive

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexfront/internal/game"
)

// DB wraps a SQLite connection for match telemetry.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		at TEXT NOT NULL,
		round INTEGER NOT NULL,
		phase TEXT NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_round ON events(round);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// EventRow is one archived event as stored on disk.
type EventRow struct {
	ID       int64  `db:"id" json:"id"`
	At       string `db:"at" json:"at"`
	Round    int    `db:"round" json:"round"`
	Phase    string `db:"phase" json:"phase"`
	Category string `db:"category" json:"category"`
	Message  string `db:"message" json:"message"`
}

// Record appends one event. Suitable as a game event sink; a write
// failure is logged, never surfaced to gameplay.
func (db *DB) Record(ev game.Event) {
	_, err := db.conn.Exec(
		"INSERT INTO events (at, round, phase, category, message) VALUES (?, ?, ?, ?, ?)",
		ev.At.UTC().Format(time.RFC3339), ev.Round, ev.Phase, ev.Category, ev.Message,
	)
	if err != nil {
		slog.Error("archive write failed", "error", err, "category", ev.Category)
	}
}

// Recent returns the most recent N archived events, newest first.
func (db *DB) Recent(limit int) ([]EventRow, error) {
	var rows []EventRow
	err := db.conn.Select(&rows,
		"SELECT id, at, round, phase, category, message FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return rows, err
}

// ByRound returns every archived event of one round in play order.
func (db *DB) ByRound(round int) ([]EventRow, error) {
	var rows []EventRow
	err := db.conn.Select(&rows,
		"SELECT id, at, round, phase, category, message FROM events WHERE round = ? ORDER BY id",
		round,
	)
	return rows, err
}

// SaveMeta stores a key-value pair in match metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO match_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM match_meta WHERE key = ?", key)
	return value, err
}
