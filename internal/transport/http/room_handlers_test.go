package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestCreateAndFetchRoom(t *testing.T) {
	ts, st := startTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/rooms", "application/json", nil)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create room status = %d, want 201", resp.StatusCode)
	}
	roomID := createRoom(t, resp)

	if _, err := st.SetRoomState(context.Background(), roomID, "x = 1"); err != nil {
		t.Fatalf("seed room state: %v", err)
	}

	resp, err = ts.Client().Get(ts.URL + "/api/rooms/" + roomID)
	if err != nil {
		t.Fatalf("fetch room: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch room status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var room RoomResponse
	decodeBody(t, body, &room)
	if room.RoomID != roomID || room.Code != "x = 1" {
		t.Fatalf("fetch room = %+v", room)
	}
}

func TestFetchUnknownRoomReturnsEmptyState(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/does-not-exist")
	if err != nil {
		t.Fatalf("fetch room: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unknown room", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var room RoomResponse
	decodeBody(t, body, &room)
	if room.RoomID != "does-not-exist" || room.Code != "" {
		t.Fatalf("unknown room = %+v, want empty code", room)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestAutocompleteEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	body := `{"code":"import ","cursorPosition":7,"language":"python"}`
	resp, err := ts.Client().Post(ts.URL+"/api/autocomplete", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("autocomplete request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	var got SuggestResponse
	decodeBody(t, data, &got)
	if got.Suggestion != "sys" {
		t.Fatalf("suggestion = %q, want sys", got.Suggestion)
	}
}

func TestAutocompleteRejectsInvalidBody(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/autocomplete", "application/json", strings.NewReader(`{`))
	if err != nil {
		t.Fatalf("autocomplete request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
