package engine

import "fmt"

// InBounds reports whether pos lies inside the grid. Handles non-square
// grids properly.
func InBounds(grid [][]Cell, pos Position) bool {
	if pos.Row < 0 || pos.Row >= len(grid) {
		return false
	}
	if pos.Col < 0 || pos.Col >= len(grid[pos.Row]) {
		return false
	}
	return true
}

// IsWalkable reports whether the player may step into pos: in bounds and
// unoccupied terrain (plain floor or an unfilled goal). Walls, boxes and
// the player's own cell are not walkable.
func IsWalkable(grid [][]Cell, pos Position) bool {
	if !InBounds(grid, pos) {
		return false
	}
	t := grid[pos.Row][pos.Col].Type
	return t == Floor || t == Goal
}

// LocatePlayer scans rows in order, columns in order, and returns the
// first cell holding the player. found is false when no player cell
// exists, which indicates a corrupted grid: well-formed levels always
// carry exactly one player.
func LocatePlayer(grid [][]Cell) (Position, bool) {
	for r, row := range grid {
		for c, cell := range row {
			if cell.Type == PlayerOnFloor || cell.Type == PlayerOnGoal {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// IsSolved reports whether the level is won: no cell is tagged as a plain
// unfilled goal. PlayerOnGoal and BoxOnGoal do not count as unsolved.
func IsSolved(grid [][]Cell) bool {
	for _, row := range grid {
		for _, cell := range row {
			if cell.Type == Goal {
				return false
			}
		}
	}
	return true
}

// CountCellType counts the cells of a specific type in the grid
func CountCellType(grid [][]Cell, cellType CellType) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell.Type == cellType {
				count++
			}
		}
	}
	return count
}

// RemainingGoals returns the number of unfilled goal cells.
func RemainingGoals(grid [][]Cell) int {
	return CountCellType(grid, Goal)
}

// CloneGrid returns a deep copy of grid. Move application and path replay
// always work on a copy so a rejected or partially applied action never
// leaks into committed state.
func CloneGrid(grid [][]Cell) [][]Cell {
	clone := make([][]Cell, len(grid))
	for i, row := range grid {
		clone[i] = make([]Cell, len(row))
		copy(clone[i], row)
	}
	return clone
}

// GridsEqual reports whether two grids hold identical tags cell for cell.
func GridsEqual(a, b [][]Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// DecodeLayout converts tile-code rows into a grid. It only checks that
// every character is a known tile code; structural validation (rectangular
// shape, single player) belongs to ValidateLevelPack.
func DecodeLayout(layout []string) ([][]Cell, error) {
	grid := make([][]Cell, len(layout))
	for r, rowStr := range layout {
		grid[r] = make([]Cell, len(rowStr))
		for c, ch := range []byte(rowStr) {
			t, err := decodeTile(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %w", r+1, c+1, err)
			}
			grid[r][c] = Cell{Type: t}
		}
	}
	return grid, nil
}

// EncodeGrid renders a grid back into tile-code rows.
func EncodeGrid(grid [][]Cell) []string {
	rows := make([]string, len(grid))
	for r, row := range grid {
		line := make([]byte, len(row))
		for c, cell := range row {
			line[c] = encodeTile(cell.Type)
		}
		rows[r] = string(line)
	}
	return rows
}

func decodeTile(ch byte) (CellType, error) {
	switch ch {
	case TileWall:
		return Wall, nil
	case TileFloor:
		return Floor, nil
	case TilePlayer:
		return PlayerOnFloor, nil
	case TilePlayerOnGoal:
		return PlayerOnGoal, nil
	case TileBox:
		return BoxOnFloor, nil
	case TileBoxOnGoal:
		return BoxOnGoal, nil
	case TileGoal:
		return Goal, nil
	default:
		return "", fmt.Errorf("invalid tile code %q", ch)
	}
}

func encodeTile(t CellType) byte {
	switch t {
	case Wall:
		return TileWall
	case Floor:
		return TileFloor
	case PlayerOnFloor:
		return TilePlayer
	case PlayerOnGoal:
		return TilePlayerOnGoal
	case BoxOnFloor:
		return TileBox
	case BoxOnGoal:
		return TileBoxOnGoal
	case Goal:
		return TileGoal
	default:
		return '?'
	}
}

// vacated returns the tag a cell degrades to when the player or a box
// leaves it: goal-bearing cells become plain goals, everything else
// becomes floor.
func vacated(t CellType) CellType {
	switch t {
	case PlayerOnGoal, BoxOnGoal:
		return Goal
	default:
		return Floor
	}
}

// withPlayer returns the player-occupied tag for terrain t.
func withPlayer(t CellType) CellType {
	if t == Goal {
		return PlayerOnGoal
	}
	return PlayerOnFloor
}

// withBox returns the box-occupied tag for terrain t.
func withBox(t CellType) CellType {
	if t == Goal {
		return BoxOnGoal
	}
	return BoxOnFloor
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dr := from.Row - to.Row
	if dr < 0 {
		dr = -dr
	}
	dc := from.Col - to.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
