package engine

import (
	"testing"
)

func newTestEngine(t *testing.T) *GameEngine {
	t.Helper()
	eng, err := NewEngine(DefaultPack())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return eng
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t)

	if eng.GetLevelIndex() != 0 {
		t.Errorf("expected engine to start at level 0, got %d", eng.GetLevelIndex())
	}
	if eng.GetLevelCount() != 3 {
		t.Errorf("expected 3 levels, got %d", eng.GetLevelCount())
	}
	if eng.IsCompleted() {
		t.Error("fresh engine should not be completed")
	}
	if eng.GetMoveCount() != 0 {
		t.Errorf("expected 0 moves, got %d", eng.GetMoveCount())
	}
}

func TestNewEngineRejectsInvalidPack(t *testing.T) {
	pack := &LevelPack{Name: "broken", Levels: []Level{
		{ID: "l1", Name: "L", Layout: []string{"###", "# #", "###"}},
	}}
	if _, err := NewEngine(pack); err == nil {
		t.Fatal("expected validation error for a playerless level")
	}
}

func TestEngineMoveAndReset(t *testing.T) {
	eng := newTestEngine(t)

	// Level 0 player starts at (2,2); up and down are open floor.
	if !eng.Move(Up) {
		t.Fatal("expected move up to be accepted")
	}
	if !eng.Move(Down) {
		t.Fatal("expected move down to be accepted")
	}
	if eng.GetMoveCount() != 2 {
		t.Errorf("expected 2 moves, got %d", eng.GetMoveCount())
	}

	state := eng.Reset()
	if state.MoveCount != 0 {
		t.Errorf("reset must zero the move counter, got %d", state.MoveCount)
	}
	if len(state.CurrentMoves) != 0 {
		t.Errorf("reset must clear the level's move segment, got %d entries", len(state.CurrentMoves))
	}
	if len(state.MoveHistory) != 2 {
		t.Errorf("cumulative history must survive a reset, got %d entries", len(state.MoveHistory))
	}
	if state.TotalMoves != 2 {
		t.Errorf("total moves must survive a reset, got %d", state.TotalMoves)
	}

	pos := eng.GetPlayerPosition()
	if (pos != Position{Row: 2, Col: 2}) {
		t.Errorf("reset must restore the player start, got %v", pos)
	}
}

func TestEngineAdvanceLevelWraps(t *testing.T) {
	eng := newTestEngine(t)

	for i := 1; i < eng.GetLevelCount(); i++ {
		state, err := eng.AdvanceLevel()
		if err != nil {
			t.Fatalf("AdvanceLevel failed: %v", err)
		}
		if state.LevelIndex != i {
			t.Fatalf("expected level index %d, got %d", i, state.LevelIndex)
		}
	}

	state, err := eng.AdvanceLevel()
	if err != nil {
		t.Fatalf("AdvanceLevel failed: %v", err)
	}
	if state.LevelIndex != 0 {
		t.Errorf("advancing past the last level must wrap to 0, got %d", state.LevelIndex)
	}
}

func TestEngineSolveFirstLevel(t *testing.T) {
	eng := newTestEngine(t)

	// Level 0: player (2,2), box (2,3), goal (2,5). Two pushes right.
	if !eng.Move(Right) {
		t.Fatal("first push rejected")
	}
	if eng.IsCompleted() {
		t.Fatal("level completed too early")
	}
	if !eng.Move(Right) {
		t.Fatal("second push rejected")
	}
	if !eng.IsCompleted() {
		t.Fatal("pushing the box onto the goal must complete the level")
	}

	if eng.Move(Right) {
		t.Error("moves after completion must be rejected")
	}
	if eng.GetMoveCount() != 2 {
		t.Errorf("expected 2 moves, got %d", eng.GetMoveCount())
	}

	last := eng.GetLastMove()
	if last == nil {
		t.Fatal("expected a last move")
	}
	if !last.Pushed {
		t.Error("winning move should be recorded as a push")
	}
}

func TestEngineCanMove(t *testing.T) {
	eng := newTestEngine(t)
	before := CloneGrid(eng.GetState().Grid)

	for _, dir := range Directions {
		eng.CanMove(dir)
	}
	if !GridsEqual(eng.GetState().Grid, before) {
		t.Fatal("CanMove must not mutate the grid")
	}
	if eng.GetMoveCount() != 0 {
		t.Errorf("CanMove must not count moves, got %d", eng.GetMoveCount())
	}

	// Level 0 start (2,2): up, down, and right (push) are open; left is
	// open floor too.
	if !eng.CanMove(Right) {
		t.Error("push right should be possible from the start")
	}
	if got := len(eng.GetPossibleMoves()); got != 4 {
		t.Errorf("expected 4 possible moves from the start, got %d", got)
	}
}

func TestEngineMoveToCell(t *testing.T) {
	eng := newTestEngine(t)

	// Walk to the corner below the goal.
	steps := eng.MoveToCell(3, 5)
	if steps == 0 {
		t.Fatal("expected a reachable cell")
	}
	if eng.GetMoveCount() != steps {
		t.Errorf("counter %d does not match applied steps %d", eng.GetMoveCount(), steps)
	}
	if pos := eng.GetPlayerPosition(); (pos != Position{Row: 3, Col: 5}) {
		t.Errorf("expected player at (3,5), got %v", pos)
	}

	// Clicking a wall is a silent no-op.
	if steps := eng.MoveToCell(0, 0); steps != 0 {
		t.Errorf("expected 0 steps for a wall click, got %d", steps)
	}
}

func TestEngineSetState(t *testing.T) {
	eng := newTestEngine(t)

	if err := eng.SetState(nil); err == nil {
		t.Error("expected error for nil state")
	}

	grid := mustDecode(t, []string{"###", "# #", "###"})
	if err := eng.SetState(&GameState{Grid: grid}); err == nil {
		t.Error("expected error for a playerless grid")
	}

	other, err := InitGameStateFromLevel(eng.GetPack(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.SetState(other); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if eng.GetLevelIndex() != 2 {
		t.Errorf("expected restored level index 2, got %d", eng.GetLevelIndex())
	}
}
