// Package engine provides the core Sokoban game logic.
//
// The engine package implements the puzzle mechanics including:
//   - Grid representation with combined terrain/occupant cell tags
//   - Player movement and the single-step box push rule
//   - Breadth-first pathfinding for click-to-navigate input
//   - Path replay with per-step revalidation and atomic commit
//   - Level pack loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the mutable session state
// for the active level, while LevelPack is the immutable catalog of
// levels loaded from JSON files.
//
// Usage:
//
//	pack, err := engine.LoadLevelPack("packs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(pack)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Move(engine.Right)        // directional input
//	eng.MoveToCell(3, 5)          // click-to-navigate input
//	state := eng.GetState()
//
// Game Rules:
//
// The player walks on floor and goal tiles and pushes one box at a time
// into the adjacent empty cell. A level completes when a push leaves no
// unfilled goal. Every illegal action is rejected silently, leaving the
// grid and move counter untouched.
package engine
