package core

import (
	"errors"
	"sync"
)

// DefaultName is used when a client connects without a display name.
const DefaultName = "Anonymous"

// eventBuffer bounds the per-session outbound queue. A session that
// falls this far behind starts losing frames (best-effort delivery).
const eventBuffer = 64

var (
	// ErrSessionClosed is returned by Send after the session disconnected.
	ErrSessionClosed = errors.New("session closed")
	// ErrSlowConsumer is returned by Send when the outbound queue is full.
	ErrSlowConsumer = errors.New("session send buffer full")
)

// Session is one live client connection: identity, display name, room
// membership and the outbound event queue drained by the transport's
// write loop. Sessions are created on accept and never reused.
type Session struct {
	ID     string
	Name   string
	RoomID string

	events chan any
	done   chan struct{}
	once   sync.Once
}

// NewSession constructs a session with an initialized outbound queue.
// An empty name falls back to DefaultName.
func NewSession(id, name, roomID string) *Session {
	if name == "" {
		name = DefaultName
	}
	return &Session{
		ID:     id,
		Name:   name,
		RoomID: roomID,
		events: make(chan any, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Send enqueues one outbound message without blocking. It fails with
// ErrSessionClosed once the session is closed and ErrSlowConsumer when
// the queue is full; either way the caller decides what to log.
func (s *Session) Send(msg any) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.events <- msg:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrSlowConsumer
	}
}

// Events exposes the outbound queue to the transport write loop.
func (s *Session) Events() <-chan any {
	return s.events
}

// Done is closed when the session transitions to its terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close marks the session disconnected. Safe to call more than once;
// only the first call has effect.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}
