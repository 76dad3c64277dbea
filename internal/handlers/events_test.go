package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialEvents(t *testing.T, ts *testServer) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var evt Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	return evt
}

func TestEventsFollowSession(t *testing.T) {
	ts := newTestServer(t, 2)
	conn := dialEvents(t, ts)

	evt := readEvent(t, conn)
	if evt.Type != eventPage || evt.Page == nil || len(evt.Page.Tiles) != 2 {
		t.Fatalf("Expected initial page with 2 tiles, got %+v", evt)
	}

	ts.post(t, "/api/click", `{"tile":0,"button":"primary"}`)
	evt = readEvent(t, conn)
	if evt.Type != eventPage || evt.Page.Tiles[0].Label != "Cat meme" {
		t.Errorf("Expected page with labeled tile, got %+v", evt)
	}

	// ignored clicks publish nothing; the next event is the page turn
	ts.post(t, "/api/click", `{"tile":0,"button":"middle"}`)
	ts.post(t, "/api/advance", "")
	evt = readEvent(t, conn)
	if evt.Type != eventPage || evt.Page.Page != 2 {
		t.Errorf("Expected page 2 after advance, got %+v", evt)
	}

	ts.post(t, "/api/close", "")
	evt = readEvent(t, conn)
	if evt.Type != eventClosed {
		t.Errorf("Expected closed event, got %+v", evt)
	}
}

func TestHubClose(t *testing.T) {
	ts := newTestServer(t, 1)
	conn := dialEvents(t, ts)
	readEvent(t, conn)

	hub := NewHub()
	hub.Close()
	if hub.add(&client{send: make(chan []byte, 1)}) {
		t.Error("Expected closed hub to refuse viewers")
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	ts.handler.Shutdown()
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal close, got %v", err)
	}
}
