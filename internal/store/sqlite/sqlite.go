package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pairpad/pairpad-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id         TEXT PRIMARY KEY,
	code       TEXT NOT NULL DEFAULT '',
	language   TEXT NOT NULL DEFAULT 'python',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// NewWithSetup opens the database and runs a setup function instead of
// the default schema. Useful for tests that seed rows up front.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateRoom inserts a new empty room with a generated UUID.
func (s *SQLiteStore) CreateRoom(ctx context.Context) (*store.Room, error) {
	room := &store.Room{
		ID:        uuid.NewString(),
		Language:  store.DefaultLanguage,
		UpdatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO rooms (id, code, language, updated_at)
		VALUES (?, '', ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, room.ID, room.Language, room.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}

	return room, nil
}

// GetRoomState reads the current buffer for the room. A missing row is
// reported as (found=false), not as an error.
func (s *SQLiteStore) GetRoomState(ctx context.Context, roomID string) (string, bool, error) {
	var code string
	err := s.db.QueryRowContext(ctx, `SELECT code FROM rooms WHERE id = ?`, roomID).Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query room: %w", err)
	}
	return code, true, nil
}

// SetRoomState upserts the room's buffer and bumps updated_at.
func (s *SQLiteStore) SetRoomState(ctx context.Context, roomID, code string) (time.Time, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO rooms (id, code, language, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET code = excluded.code, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, roomID, code, store.DefaultLanguage, now); err != nil {
		return time.Time{}, fmt.Errorf("upsert room: %w", err)
	}

	return now, nil
}
