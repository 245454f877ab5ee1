// Package service provides the business logic layer for the Sokoban game.
//
// The service package sits between the transport layers (REST API, MCP)
// and the game engine. It handles:
//   - Session lifecycle management (create, get, list, delete)
//   - Move execution and click-to-move dispatch with event extraction
//   - Level lifecycle (reset, next level, level selection)
//   - Paginated move history retrieval
//   - Level pack listing, loading, and saving
//
// Architecture:
//
// GameService is the single interface every transport talks to. The
// implementation composes two narrower interfaces:
//   - SessionManager: session storage and persistence
//   - PackManager: level pack loading and caching
//
// This keeps the transports free of storage and pack-format concerns and
// lets tests substitute in-memory fakes for both.
//
// Usage:
//
//	svc := service.NewGameService(sessionManager, packManager)
//
//	info, err := svc.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := svc.Move(ctx, info.ID, "up", false)
//	clicked, err := svc.MoveTo(ctx, info.ID, 2, 5)
//
// Concurrency:
//
// All operations are safe for concurrent use. Mutating operations take a
// write lock; reads take a read lock. Sessions are persisted after every
// state-changing operation.
package service
