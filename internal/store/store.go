package store

import (
	"context"
	"time"
)

// DefaultLanguage is assigned to newly created rooms.
const DefaultLanguage = "python"

// Room is the persisted state of one collaborative buffer.
type Room struct {
	ID        string
	Code      string
	Language  string
	UpdatedAt time.Time
}

// Store is the persistence adapter consumed by the sync engine and the
// HTTP layer. Room text is never cached core-side: every join reads
// fresh and every update writes through, so concurrent updates race
// with last-write-wins semantics.
type Store interface {
	// CreateRoom inserts a new empty room with a server-generated ID.
	CreateRoom(ctx context.Context) (*Room, error)

	// GetRoomState returns the current buffer for the room. An unknown
	// room is not an error: it reports empty code and found=false.
	GetRoomState(ctx context.Context, roomID string) (code string, found bool, err error)

	// SetRoomState replaces the room's buffer and returns the write
	// timestamp. The room row is created if it does not exist yet.
	SetRoomState(ctx context.Context, roomID, code string) (time.Time, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
