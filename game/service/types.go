package service

import (
	"time"

	"github.com/pushstone/sokoban/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	PackName       string            `json:"pack_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	LevelCount     int               `json:"level_count"`
}

// MoveResult contains the result of a single directional move
type MoveResult struct {
	Success     bool              `json:"success"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// MoveToResult contains the result of a click-to-move dispatch
type MoveToResult struct {
	Success      bool              `json:"success"`
	StepsApplied int               `json:"steps_applied"`
	GameState    *engine.GameState `json:"game_state"`
	Message      string            `json:"message"`
	Events       []GameEvent       `json:"events,omitempty"`
	Target       engine.Position   `json:"target"`
}

// StepInfo is a compact record of one executed move
type StepInfo struct {
	Dir       string          `json:"dir"`
	From      engine.Position `json:"from"`
	To        engine.Position `json:"to"`
	TileChar  string          `json:"tile_char"`
	TileType  string          `json:"tile_type"`
	Pushed    bool            `json:"pushed,omitempty"`
	Completed bool            `json:"completed,omitempty"`
	Success   bool            `json:"success"`
}

// AttemptInfo details the target cell of a rejected move
type AttemptInfo struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	TileChar string `json:"tile_char"`
	TileType string `json:"tile_type"`
	Walkable bool   `json:"walkable"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "push", "level_complete", "level_change", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// PackInfo provides information about a level pack
type PackInfo struct {
	Filename    string `json:"filename"`
	PackID      string `json:"pack_id"` // The identifier to use for session creation
	Name        string `json:"name"`    // Display name
	Description string `json:"description"`
	LevelCount  int    `json:"level_count"`
}
