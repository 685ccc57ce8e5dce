package core

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrDuplicateSession is returned by Connect when a session with the
// same ID is already registered in the room.
var ErrDuplicateSession = errors.New("session already connected")

// Manager owns the room membership registry and performs broadcast
// fan-out. One instance is constructed at startup and shared by all
// connection handlers; there is no package-level registry.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string][]*Session
	log   *zerolog.Logger
}

// NewManager builds an empty registry.
func NewManager(logger *zerolog.Logger) *Manager {
	return &Manager{
		rooms: make(map[string][]*Session),
		log:   logger,
	}
}

// Connect registers the session at the end of its room's member list.
// A second session with the same ID in the same room is rejected.
func (m *Manager) Connect(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, member := range m.rooms[s.RoomID] {
		if member.ID == s.ID {
			return ErrDuplicateSession
		}
	}
	m.rooms[s.RoomID] = append(m.rooms[s.RoomID], s)

	m.log.Debug().
		Str("room_id", s.RoomID).
		Str("session_id", s.ID).
		Int("members", len(m.rooms[s.RoomID])).
		Msg("session joined room")
	return nil
}

// Disconnect removes the session from its room and closes it. The
// display name is resolved before removal so callers can build the
// leave notification. Removing a session that is already gone is a
// no-op and reports ok=false.
func (m *Manager) Disconnect(s *Session) (string, bool) {
	m.mu.Lock()

	members, ok := m.rooms[s.RoomID]
	if !ok {
		m.mu.Unlock()
		return "", false
	}

	idx := -1
	for i, member := range members {
		if member.ID == s.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return "", false
	}

	name := members[idx].Name
	m.rooms[s.RoomID] = append(members[:idx], members[idx+1:]...)
	remaining := len(m.rooms[s.RoomID])
	if remaining == 0 {
		delete(m.rooms, s.RoomID)
	}
	m.mu.Unlock()

	s.Close()

	m.log.Debug().
		Str("room_id", s.RoomID).
		Str("session_id", s.ID).
		Int("members", remaining).
		Msg("session left room")
	return name, true
}

// Broadcast delivers msg to every session currently in the room except
// the one matching excludeID (pass "" to deliver to everyone). The
// membership is snapshotted up front: sends themselves can trigger
// disconnects that mutate the registry mid-fan-out. A failed send to
// one recipient never aborts delivery to the rest.
func (m *Manager) Broadcast(roomID string, msg any, excludeID string) {
	m.mu.RLock()
	members := m.rooms[roomID]
	snapshot := make([]*Session, len(members))
	copy(snapshot, members)
	m.mu.RUnlock()

	var failed int
	for _, member := range snapshot {
		if member.ID == excludeID {
			continue
		}
		if err := member.Send(msg); err != nil {
			failed++
			m.log.Warn().
				Err(err).
				Str("room_id", roomID).
				Str("session_id", member.ID).
				Msg("dropped broadcast to session")
		}
	}
	if failed > 0 {
		m.log.Debug().
			Str("room_id", roomID).
			Int("failed", failed).
			Int("recipients", len(snapshot)).
			Msg("broadcast finished with failures")
	}
}

// Members returns the display names of the room's current sessions in
// join order. Unknown rooms yield an empty list.
func (m *Manager) Members(roomID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := m.rooms[roomID]
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}
	return names
}

// RoomCount reports how many rooms currently have at least one member.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}
