package engine

import (
	"fmt"
	"time"
)

// applyMove applies a single directional move to grid in place. It writes
// nothing until every check has passed, so a rejected move leaves the grid
// byte for byte identical. pushed reports whether a box was displaced.
//
// A grid without a player cell is a corrupted level and a contract
// violation; applyMove fails fast rather than guessing.
func applyMove(grid [][]Cell, dir Direction) (moved, pushed bool) {
	dr, dc, ok := dir.Delta()
	if !ok {
		return false, false
	}

	player, found := LocatePlayer(grid)
	if !found {
		panic("engine: no player cell on grid")
	}

	dst := Position{Row: player.Row + dr, Col: player.Col + dc}
	if !InBounds(grid, dst) {
		return false, false
	}

	switch grid[dst.Row][dst.Col].Type {
	case Floor, Goal:
		// Simple step: vacate the old cell, occupy the destination.
		target := grid[dst.Row][dst.Col].Type
		grid[player.Row][player.Col].Type = vacated(grid[player.Row][player.Col].Type)
		grid[dst.Row][dst.Col].Type = withPlayer(target)
		return true, false

	case BoxOnFloor, BoxOnGoal:
		// Push attempt: the box moves one cell further in the same
		// direction, onto empty terrain only.
		beyond := Position{Row: dst.Row + dr, Col: dst.Col + dc}
		if !IsWalkable(grid, beyond) {
			return false, false
		}
		boxCell := grid[dst.Row][dst.Col].Type
		grid[beyond.Row][beyond.Col].Type = withBox(grid[beyond.Row][beyond.Col].Type)
		// The cell the box vacates determines whether the player now
		// stands on floor or on a goal.
		grid[dst.Row][dst.Col].Type = withPlayer(vacated(boxCell))
		grid[player.Row][player.Col].Type = vacated(grid[player.Row][player.Col].Type)
		return true, true

	default:
		return false, false
	}
}

// AttemptMove attempts to move the player in the specified direction,
// mutating the session grid on success. The win check runs only after an
// accepted push: a simple step can leave zero unfilled goals without
// completing the level.
func (gs *GameState) AttemptMove(dir Direction, msgs PackMessages) bool {
	if gs.Completed {
		return false
	}

	prev, found := LocatePlayer(gs.Grid)
	if !found {
		panic("engine: no player cell on grid")
	}

	moved, pushed := applyMove(gs.Grid, dir)
	if !moved {
		if msgs.CantMove != "" {
			gs.Message = msgs.CantMove
		} else {
			gs.Message = fmt.Sprintf("Can't move %s", dir)
		}
		return false
	}

	gs.MoveCount++
	now, _ := LocatePlayer(gs.Grid)
	gs.addMoveToHistory(string(dir), prev, now, pushed, true)

	if pushed && IsSolved(gs.Grid) {
		gs.Completed = true
		if msgs.LevelComplete != "" {
			gs.Message = fmt.Sprintf(msgs.LevelComplete, gs.MoveCount)
		} else {
			gs.Message = fmt.Sprintf("Level complete in %d moves!", gs.MoveCount)
		}
		return true
	}

	if msgs.MoveStatus != "" {
		gs.Message = fmt.Sprintf(msgs.MoveStatus, gs.MoveCount)
	}
	return true
}

// addMoveToHistory appends an entry to the cumulative and per-level
// segments of the move history.
func (gs *GameState) addMoveToHistory(action string, fromPos, toPos Position, pushed, success bool) {
	entry := MoveHistoryEntry{
		Action:       action,
		FromPosition: fromPos,
		ToPosition:   toPos,
		Pushed:       pushed,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   gs.TotalMoves + 1,
	}
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
