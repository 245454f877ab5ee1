// Package session provides session management for the Sokoban game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional JSON file persistence
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session owns its own engine instance playing one level pack, plus
// metadata like creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager
// ensures IDs are unique and generates them from cryptographic
// randomness. Lookups are case-insensitive.
//
// Persistence:
//
// FilePersistence stores each session as one JSON file holding the pack
// name and the full game state. On load, the pack is re-read through the
// pack manager and the persisted state restored on a fresh engine, so
// sessions survive server restarts.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", "classic", pack)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
//	// List all active sessions
//	sessions := manager.List()
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
package session
