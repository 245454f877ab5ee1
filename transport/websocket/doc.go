// Package websocket provides real-time board updates for the Sokoban game.
//
// The websocket package implements a hub-and-client model on top of
// gorilla/websocket:
//   - Hub tracks connected clients grouped by session ID
//   - Every accepted move, click dispatch, reset, and level change
//     broadcasts the full game state to the session's clients
//   - Clients are read-only spectators; game input goes through the REST
//     API or MCP transport
//
// Protocol:
//
// Clients connect to /ws?session={id}. Messages are JSON:
//
//	{
//	  "session_id": "ab12",
//	  "event": "state_update",
//	  "game_state": { "grid": [...], "move_count": 4, ... }
//	}
//
// Connection Lifecycle:
//
// Each client runs a read pump and a write pump goroutine. The read pump
// enforces a read deadline refreshed by pong responses; the write pump
// pings on a timer and coalesces queued updates into a single frame. A
// client whose send buffer fills up is disconnected rather than allowed
// to stall the hub.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// In an HTTP handler:
//	hub.ServeWS(w, r, sessionID)
//
//	// After a state change:
//	hub.BroadcastToSession(sessionID, state)
package websocket
