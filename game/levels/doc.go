// Package levels provides level pack management for the Sokoban game.
//
// The levels package handles:
//   - Loading level packs from JSON files
//   - Pack validation and caching
//   - Default pack management, seeding the built-in pack on first run
//   - Pack discovery and listing
//
// Pack Format:
//
// Level packs are stored as JSON files in the packs directory. Each pack
// defines:
//   - A list of levels as tile-code layouts (# wall, @ player, B box,
//     T goal, X box on goal, P player on goal)
//   - A legend mapping tile codes to cell names
//   - Message templates for game events
//
// Usage:
//
//	manager, err := levels.NewManager("packs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific pack
//	pack, err := manager.LoadPack("classic")
//
//	// Get the default pack
//	defaultPack := manager.GetDefault()
//
//	// List available packs
//	packs, err := manager.ListPacks()
//
// Validation:
//
// All packs are validated on load: rectangular layouts within size
// limits, known tile codes only, exactly one player per level, at least
// one unfilled goal, and enough loose boxes to fill every goal.
package levels
