package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestManager() *Manager {
	nop := zerolog.Nop()
	return NewManager(&nop)
}

func mustEvent(t *testing.T, s *Session) any {
	t.Helper()

	select {
	case ev := <-s.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event for session %s not received", s.ID)
		return nil
	}
}

func assertNoEvent(t *testing.T, s *Session) {
	t.Helper()

	select {
	case ev := <-s.Events():
		t.Fatalf("unexpected event for session %s: %+v", s.ID, ev)
	case <-time.After(100 * time.Millisecond):
	}
}
