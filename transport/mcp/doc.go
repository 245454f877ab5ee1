// Package mcp provides Model Context Protocol server implementation for the Sokoban puzzle server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio transport mode proxying to the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with grid visualization
//   - move: Execute single directional movement (pushes boxes when possible)
//   - move_to: Click-to-move dispatch - walk the shortest path or push an adjacent box
//   - reset_game: Reset the current level to its initial layout
//   - next_level: Advance to the next level in the pack
//   - select_level: Jump to a specific level index
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with level pack selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_packs: List available level packs
//   - game_instructions: Full game rules and solving strategies
//   - describe_cell: Inspect a single grid cell's tile code
//
// Transport:
//
// The client is a thin proxy: every tool call becomes a REST API request
// against the game server, so MCP and HTTP clients always observe the same
// session state.
//
// Session Management:
//
// All game tools take a session_id parameter for multi-session gameplay.
// AI agents can manage multiple concurrent puzzle sessions independently.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously solve Sokoban levels
//   - Plan push sequences and verify grid readings cell by cell
//   - Recover from deadlocks via reset and history inspection
//   - Manage multiple game sessions
package mcp
