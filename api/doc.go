// Package api provides HTTP REST API handlers for the Sokoban game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Level pack listing, retrieval, and upload
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional pack_id in body)
//   - GET /api/sessions - List sessions (sort/order/limit query params)
//   - GET /api/sessions/unified - Multi-session overview
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Directional move {"direction":"up"}
//   - POST /api/sessions/{id}/move-to - Click-to-move {"row":2,"col":5}
//   - POST /api/sessions/{id}/reset - Reset the current level
//   - POST /api/sessions/{id}/next-level - Advance to the next level
//   - POST /api/sessions/{id}/level - Jump to a level {"level":2}
//   - GET /api/sessions/{id}/history - Paginated move history
//
// Level Packs:
//   - GET /api/packs - List available packs
//   - GET /api/packs/{name} - Get a full pack definition
//   - POST /api/packs - Upload and validate a pack
//
// WebSocket:
//   - GET /ws?session={id} - Live state updates for a session
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Accepted moves and click
// dispatches broadcast the resulting game state to all WebSocket clients
// subscribed to the session.
//
// Move responses carry a compact step record:
//
//	{
//	  "success": true,
//	  "step": { "dir": "right", "from": {"row":2,"col":2},
//	            "to": {"row":2,"col":3}, "tile_char": "@",
//	            "pushed": true, "completed": false },
//	  "game_state": { ... }
//	}
//
// Rejected moves instead carry the attempted target cell:
//
//	{
//	  "success": false,
//	  "attempted_to": { "row": 2, "col": 0, "tile_char": "#",
//	                    "tile_type": "wall", "walkable": false }
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
