package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	LoadLevel(index int) (*GameState, error)
	Reset() *GameState
	AdvanceLevel() (*GameState, error)
	IsCompleted() bool
	GetMoveCount() int
	GetPlayerPosition() Position

	// Movement operations
	Move(dir Direction) bool
	MoveToCell(row, col int) int
	CanMove(dir Direction) bool
	GetPossibleMoves() []Direction

	// Level pack
	GetPack() *LevelPack
	GetLevelIndex() int
	GetLevelCount() int

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state *GameState
	pack  *LevelPack
}

// NewEngine creates a new game engine playing the provided pack, loaded
// at its first level.
func NewEngine(pack *LevelPack) (*GameEngine, error) {
	if err := ValidateLevelPack(pack); err != nil {
		return nil, err
	}

	state, err := InitGameStateFromLevel(pack, 0)
	if err != nil {
		return nil, err
	}

	return &GameEngine{pack: pack, state: state}, nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if _, found := LocatePlayer(state.Grid); !found {
		return fmt.Errorf("state has no player cell")
	}
	e.state = state
	return nil
}

// LoadLevel discards the current grid and loads the indexed level fresh.
func (e *GameEngine) LoadLevel(index int) (*GameState, error) {
	state, err := InitGameStateFromLevel(e.pack, index)
	if err != nil {
		return nil, err
	}

	// Cumulative history and totals survive level transitions.
	state.MoveHistory = e.state.MoveHistory
	state.TotalMoves = e.state.TotalMoves

	e.state = state
	return e.state, nil
}

// Reset reloads the current level from its template
func (e *GameEngine) Reset() *GameState {
	state, err := e.LoadLevel(e.state.LevelIndex)
	if err != nil {
		// The current index was valid when loaded, so it still is.
		panic(fmt.Sprintf("engine: reset failed: %v", err))
	}
	return state
}

// AdvanceLevel moves to the next level, wrapping to the first level after
// the last one.
func (e *GameEngine) AdvanceLevel() (*GameState, error) {
	next := (e.state.LevelIndex + 1) % len(e.pack.Levels)
	return e.LoadLevel(next)
}

// IsCompleted returns whether the current level has been solved
func (e *GameEngine) IsCompleted() bool {
	return e.state.Completed
}

// GetMoveCount returns the move counter for the current level
func (e *GameEngine) GetMoveCount() int {
	return e.state.MoveCount
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	pos, found := LocatePlayer(e.state.Grid)
	if !found {
		panic("engine: no player cell on grid")
	}
	return pos
}

// Move attempts to move the player in the specified direction
func (e *GameEngine) Move(dir Direction) bool {
	return e.state.AttemptMove(dir, e.pack.Messages)
}

// MoveToCell dispatches a click on the given cell: an adjacent box becomes
// a push, an empty reachable cell becomes a walk along the shortest path.
// It returns the number of moves applied.
func (e *GameEngine) MoveToCell(row, col int) int {
	return e.state.MoveTo(Position{Row: row, Col: col}, e.pack.Messages)
}

// CanMove checks whether a move in the given direction would be accepted,
// without applying it.
func (e *GameEngine) CanMove(dir Direction) bool {
	if e.state.Completed {
		return false
	}
	work := CloneGrid(e.state.Grid)
	moved, _ := applyMove(work, dir)
	return moved
}

// GetPossibleMoves returns all directions an accepted move exists for
func (e *GameEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetPack returns the level pack being played
func (e *GameEngine) GetPack() *LevelPack {
	return e.pack
}

// GetLevelIndex returns the index of the active level
func (e *GameEngine) GetLevelIndex() int {
	return e.state.LevelIndex
}

// GetLevelCount returns the number of levels in the pack
func (e *GameEngine) GetLevelCount() int {
	return len(e.pack.Levels)
}

// GetMoveHistory returns the cumulative move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
