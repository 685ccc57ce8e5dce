package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/store"
	"github.com/pairpad/pairpad-server/internal/store/sqlite"
)

// startTestServer wires an in-memory store, a fresh registry and the
// full router behind an httptest server.
func startTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	nop := zerolog.Nop()
	manager := core.NewManager(&nop)

	server := NewServer(manager, st, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &nop)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, st
}

// frame is the union of every server frame shape, for test assertions.
type frame struct {
	Type   string   `json:"type"`
	Code   string   `json:"code"`
	Users  []string `json:"users"`
	Action string   `json:"action"`
	Name   string   `json:"name"`
	Sender string   `json:"sender"`
	Text   string   `json:"text"`
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var f frame
	if err := wsjson.Read(ctx, conn, &f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func sendRaw(t *testing.T, conn *websocket.Conn, data string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := conn.Write(ctx, websocket.MessageText, []byte(data)); err != nil {
		t.Fatalf("send raw frame: %v", err)
	}
}

func decodeBody(t *testing.T, data []byte, out any) {
	t.Helper()

	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
