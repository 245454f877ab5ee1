package engine

import "fmt"

// FindPath runs a breadth-first search over the four-directional walkable
// subgraph from start to end and returns the shortest direction sequence.
// The start cell is exempt from the walkability check since the player
// occupies it; the search only ever expands into empty floor or goal
// cells. When start equals end the result is the empty sequence. found is
// false when end is unreachable, a wall, or occupied.
func FindPath(grid [][]Cell, start, end Position) ([]Direction, bool) {
	if !InBounds(grid, start) || !InBounds(grid, end) {
		return nil, false
	}

	type link struct {
		from Position
		dir  Direction
	}

	visited := map[Position]bool{start: true}
	parents := map[Position]link{}
	queue := []Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			// Walk parent links back to start; the path comes out
			// reversed.
			var rev []Direction
			for cur != start {
				l := parents[cur]
				rev = append(rev, l.dir)
				cur = l.from
			}
			path := make([]Direction, 0, len(rev))
			for i := len(rev) - 1; i >= 0; i-- {
				path = append(path, rev[i])
			}
			return path, true
		}

		for _, dir := range Directions {
			dr, dc, _ := dir.Delta()
			next := Position{Row: cur.Row + dr, Col: cur.Col + dc}
			if visited[next] || !IsWalkable(grid, next) {
				continue
			}
			visited[next] = true
			parents[next] = link{from: cur, dir: dir}
			queue = append(queue, next)
		}
	}

	return nil, false
}

// ResolvePush infers the push direction for a click on the box at boxPos.
// It is valid only when the player stands exactly one step away on a
// single axis and the box's far side is in bounds and walkable. The state
// change itself stays with AttemptMove; this only checks the adjacency
// precondition and derives the direction from the offset sign.
func ResolvePush(grid [][]Cell, boxPos Position) (Direction, bool) {
	if !InBounds(grid, boxPos) {
		return "", false
	}
	if t := grid[boxPos.Row][boxPos.Col].Type; t != BoxOnFloor && t != BoxOnGoal {
		return "", false
	}

	player, found := LocatePlayer(grid)
	if !found {
		panic("engine: no player cell on grid")
	}

	dr := boxPos.Row - player.Row
	dc := boxPos.Col - player.Col

	var dir Direction
	switch {
	case dr == -1 && dc == 0:
		dir = Up
	case dr == 1 && dc == 0:
		dir = Down
	case dr == 0 && dc == -1:
		dir = Left
	case dr == 0 && dc == 1:
		dir = Right
	default:
		return "", false
	}

	far := Position{Row: boxPos.Row + dr, Col: boxPos.Col + dc}
	if !IsWalkable(grid, far) {
		return "", false
	}
	return dir, true
}

// MoveAlongPath replays a planned direction sequence against a working
// copy of grid, re-validating bounds and walkability at every step. A step
// that would land on a wall or box stops execution early, discarding the
// remaining steps. The returned grid reflects only the applied prefix;
// pushes never happen here since planned paths route through empty cells
// only.
func MoveAlongPath(grid [][]Cell, path []Direction) ([][]Cell, int) {
	work := CloneGrid(grid)

	player, found := LocatePlayer(work)
	if !found {
		panic("engine: no player cell on grid")
	}

	steps := 0
	for _, dir := range path {
		dr, dc, ok := dir.Delta()
		if !ok {
			break
		}
		next := Position{Row: player.Row + dr, Col: player.Col + dc}
		if !IsWalkable(work, next) {
			break
		}
		target := work[next.Row][next.Col].Type
		work[player.Row][player.Col].Type = vacated(work[player.Row][player.Col].Type)
		work[next.Row][next.Col].Type = withPlayer(target)
		player = next
		steps++
	}

	return work, steps
}

// MoveTo is the click-to-navigate dispatcher. A click on an adjacent box
// becomes a single push; a click on empty floor or an unfilled goal walks
// the shortest path there; anything else is a silent no-op. It returns the
// number of moves applied.
func (gs *GameState) MoveTo(target Position, msgs PackMessages) int {
	if gs.Completed || !InBounds(gs.Grid, target) {
		return 0
	}

	switch gs.Grid[target.Row][target.Col].Type {
	case BoxOnFloor, BoxOnGoal:
		dir, ok := ResolvePush(gs.Grid, target)
		if !ok {
			return 0
		}
		if !gs.AttemptMove(dir, msgs) {
			return 0
		}
		return 1

	case Floor, Goal:
		player, found := LocatePlayer(gs.Grid)
		if !found {
			panic("engine: no player cell on grid")
		}
		path, ok := FindPath(gs.Grid, player, target)
		if !ok {
			return 0
		}
		newGrid, steps := MoveAlongPath(gs.Grid, path)
		if steps == 0 {
			// No state mutation on a zero-step outcome, matching the
			// reject-silently policy for all no-op attempts.
			return 0
		}
		now, _ := LocatePlayer(newGrid)
		gs.Grid = newGrid
		gs.MoveCount += steps
		gs.addMoveToHistory("move_to", player, now, false, true)
		if msgs.MoveStatus != "" {
			gs.Message = fmt.Sprintf(msgs.MoveStatus, gs.MoveCount)
		}
		return steps

	default:
		return 0
	}
}
