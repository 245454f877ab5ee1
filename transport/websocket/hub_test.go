package websocket

import (
	"encoding/json"
	"testing"

	"github.com/pushstone/sokoban/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}
}

func testState(t *testing.T) *engine.GameState {
	t.Helper()
	state, err := engine.InitGameStateFromLevel(engine.DefaultPack(), 0)
	if err != nil {
		t.Fatalf("failed to build state: %v", err)
	}
	return state
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1 := newTestClient(hub, "ab12")
	c2 := newTestClient(hub, "ab12")
	other := newTestClient(hub, "cd34")

	hub.registerClient(c1)
	hub.registerClient(c2)
	hub.registerClient(other)

	if len(hub.sessions["ab12"]) != 2 {
		t.Errorf("expected 2 clients for ab12, got %d", len(hub.sessions["ab12"]))
	}
	if len(hub.sessions["cd34"]) != 1 {
		t.Errorf("expected 1 client for cd34, got %d", len(hub.sessions["cd34"]))
	}

	hub.unregisterClient(c1)
	if len(hub.sessions["ab12"]) != 1 {
		t.Errorf("expected 1 client after unregister, got %d", len(hub.sessions["ab12"]))
	}

	// Last client leaving removes the session bucket entirely.
	hub.unregisterClient(c2)
	if _, ok := hub.sessions["ab12"]; ok {
		t.Error("expected empty session to be cleaned up")
	}

	// Unregistering twice must not panic or double-close the channel.
	hub.unregisterClient(c2)
}

func TestHub_BroadcastToSession(t *testing.T) {
	hub := NewHub()

	c1 := newTestClient(hub, "ab12")
	c2 := newTestClient(hub, "ab12")
	other := newTestClient(hub, "cd34")

	hub.registerClient(c1)
	hub.registerClient(c2)
	hub.registerClient(other)

	state := testState(t)
	hub.BroadcastToSession("ab12", state)

	for i, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("client %d: invalid message JSON: %v", i, err)
			}
			if msg.Event != "state_update" {
				t.Errorf("client %d: expected state_update event, got %q", i, msg.Event)
			}
			if msg.SessionID != "ab12" {
				t.Errorf("client %d: expected session ab12, got %q", i, msg.SessionID)
			}
			if msg.GameState == nil || msg.GameState.LevelIndex != state.LevelIndex {
				t.Errorf("client %d: game state not carried in message", i)
			}
		default:
			t.Fatalf("client %d received no broadcast", i)
		}
	}

	select {
	case <-other.send:
		t.Error("client in a different session must not receive the broadcast")
	default:
	}
}

func TestHub_BroadcastToUnknownSession(t *testing.T) {
	hub := NewHub()
	// No clients registered; must be a silent no-op.
	hub.BroadcastToSession("ghost", testState(t))
}

func TestHub_SlowClientDisconnected(t *testing.T) {
	hub := NewHub()

	slow := &Client{
		hub:       hub,
		send:      make(chan []byte, 1),
		sessionID: "ab12",
	}
	hub.registerClient(slow)

	state := testState(t)
	// First broadcast fills the 1-slot buffer, second overflows it.
	hub.BroadcastToSession("ab12", state)
	hub.BroadcastToSession("ab12", state)

	if _, ok := hub.sessions["ab12"]; ok {
		t.Error("expected the backed-up client to be unregistered")
	}
}

func TestMessage_MarshalRoundTrip(t *testing.T) {
	state := testState(t)
	msg := &Message{
		SessionID: "ab12",
		GameState: state,
		Event:     "state_update",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.GameState.LevelID != state.LevelID {
		t.Errorf("expected level id %q, got %q", state.LevelID, decoded.GameState.LevelID)
	}
	if len(decoded.GameState.Grid) != len(state.Grid) {
		t.Error("grid dimensions lost in round trip")
	}
}
