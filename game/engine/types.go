package engine

import "strings"

// CellType is the combined terrain and occupant tag of a grid cell.
// A cell encodes both what the ground is (wall, floor, goal) and what
// stands on it (player, box, nothing) as one value; there is no separate
// occupant layer.
type CellType string

const (
	Wall          CellType = "wall"
	Floor         CellType = "floor"
	Goal          CellType = "goal"
	PlayerOnFloor CellType = "player"
	PlayerOnGoal  CellType = "player_on_goal"
	BoxOnFloor    CellType = "box"
	BoxOnGoal     CellType = "box_on_goal"

	// Validation constants
	MinGridSize = 3
	MaxGridSize = 64
)

// Tile codes used by level layouts and text rendering.
const (
	TileWall         = '#'
	TileFloor        = ' '
	TilePlayer       = '@'
	TilePlayerOnGoal = 'P'
	TileBox          = 'B'
	TileBoxOnGoal    = 'X'
	TileGoal         = 'T'
)

// Cell represents a single grid cell
type Cell struct {
	Type CellType `json:"type"`
}

// Position represents row,col coordinates (0-based, row 0 at the top)
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Direction is one of the four cardinal movement directions.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists all directions in the fixed order used for BFS
// expansion. The order is load-bearing: shortest-path ties resolve to
// whichever path this order discovers first.
var Directions = [4]Direction{Up, Down, Left, Right}

// ParseDirection normalizes a direction string from the wire. ok is false
// for anything other than up, down, left, or right.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(s)) {
	case Up:
		return Up, true
	case Down:
		return Down, true
	case Left:
		return Left, true
	case Right:
		return Right, true
	default:
		return "", false
	}
}

// Delta returns the row/col offset for the direction. ok is false for an
// unknown direction string.
func (d Direction) Delta() (dr, dc int, ok bool) {
	switch d {
	case Up:
		return -1, 0, true
	case Down:
		return 1, 0, true
	case Left:
		return 0, -1, true
	case Right:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}

// Level is an immutable puzzle template. The engine always plays on a
// decoded copy, never on the template itself.
type Level struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Layout []string `json:"layout"`
}

// PackMessages are the user-facing strings a level pack carries.
type PackMessages struct {
	Welcome       string `json:"welcome"`
	LevelComplete string `json:"level_complete"`
	CantMove      string `json:"cant_move"`
	BoxBlocked    string `json:"box_blocked"`
	MoveStatus    string `json:"move_status"`
}

// LevelPack is an ordered catalog of levels loaded from JSON.
type LevelPack struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Legend      map[string]string `json:"legend"`
	Levels      []Level           `json:"levels"`
	Messages    PackMessages      `json:"messages"`
}

// GameState represents the complete session state for the active level
type GameState struct {
	Grid       [][]Cell `json:"grid"`
	LevelIndex int      `json:"level_index"`
	LevelID    string   `json:"level_id"`
	LevelName  string   `json:"level_name"`
	PackName   string   `json:"pack_name"`

	// MoveCount counts accepted moves on the current level. It resets to
	// zero on level load and reset.
	MoveCount int `json:"move_count"`

	// Completed flips false->true when a push leaves no unfilled goal.
	// Only a level load or reset clears it.
	Completed bool `json:"completed"`

	Message     string             `json:"message"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last level load or
	// reset. It mirrors MoveHistory entries but gets cleared on reset
	// while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single action applied to the grid
type MoveHistoryEntry struct {
	Action       string   `json:"action"`
	FromPosition Position `json:"from_position"`
	ToPosition   Position `json:"to_position"`
	Pushed       bool     `json:"pushed"`
	Timestamp    int64    `json:"timestamp"`
	Success      bool     `json:"success"`
	MoveNumber   int      `json:"move_number"`
}
