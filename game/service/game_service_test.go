package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pushstone/sokoban/game/engine"
	"github.com/pushstone/sokoban/game/service"
)

// MockSessionManager is an in-memory SessionManager for tests
type MockSessionManager struct {
	mu       sync.Mutex
	sessions map[string]*service.Session
	nextID   int
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{sessions: make(map[string]*service.Session)}
}

func (m *MockSessionManager) Create(id, packName string, pack *engine.LevelPack) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		m.nextID++
		id = fmt.Sprintf("s%03d", m.nextID)
	}
	eng, err := engine.NewEngine(pack)
	if err != nil {
		return nil, err
	}
	sess := &service.Session{
		ID:             id,
		Engine:         eng,
		PackName:       packName,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return sess, nil
}

func (m *MockSessionManager) GetOrCreate(id, packName string, pack *engine.LevelPack) (*service.Session, error) {
	if sess, err := m.Get(id); err == nil {
		return sess, nil
	}
	return m.Create(id, packName, pack)
}

func (m *MockSessionManager) List() []*service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %s not found", id)
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		sess.LastAccessedAt = time.Now()
	}
	return nil
}

func (m *MockSessionManager) Save(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return nil
}

// MockPackManager serves the built-in pack under a fixed name
type MockPackManager struct {
	packs map[string]*engine.LevelPack
}

func NewMockPackManager() *MockPackManager {
	return &MockPackManager{packs: map[string]*engine.LevelPack{
		"classic": engine.DefaultPack(),
	}}
}

func (m *MockPackManager) LoadPack(name string) (*engine.LevelPack, error) {
	name = strings.TrimSuffix(name, ".json")
	pack, ok := m.packs[name]
	if !ok {
		return nil, fmt.Errorf("pack not found: %s", name)
	}
	return pack, nil
}

func (m *MockPackManager) ListPacks() ([]*service.PackInfo, error) {
	result := make([]*service.PackInfo, 0, len(m.packs))
	for id, pack := range m.packs {
		result = append(result, &service.PackInfo{
			Filename:    id + ".json",
			PackID:      id,
			Name:        pack.Name,
			Description: pack.Description,
			LevelCount:  len(pack.Levels),
		})
	}
	return result, nil
}

func (m *MockPackManager) GetDefault() *engine.LevelPack {
	return m.packs["classic"]
}

func (m *MockPackManager) DefaultName() string {
	return "classic"
}

func (m *MockPackManager) SavePack(name string, pack *engine.LevelPack) error {
	m.packs[strings.TrimSuffix(name, ".json")] = pack
	return nil
}

func newTestService() (service.GameService, *MockSessionManager) {
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockPackManager()), sessions
}

func TestCreateSession(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("default pack", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.ID == "" {
			t.Error("expected a generated session ID")
		}
		if info.PackName != "classic" {
			t.Errorf("expected pack classic, got %q", info.PackName)
		}
		if info.GameState == nil || info.GameState.LevelIndex != 0 {
			t.Error("expected session to start at level 0")
		}
		if info.LevelCount != 3 {
			t.Errorf("expected 3 levels, got %d", info.LevelCount)
		}
	})

	t.Run("named pack", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "classic")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.PackName != "classic" {
			t.Errorf("expected pack classic, got %q", info.PackName)
		}
	})

	t.Run("unknown pack", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nonexistent")
		if err == nil {
			t.Fatal("expected error for unknown pack")
		}
		if !strings.Contains(err.Error(), "classic") {
			t.Errorf("error should list available packs, got: %v", err)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != info.ID {
		t.Errorf("expected session %s, got %s", info.ID, got.ID)
	}

	list, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 session, got %d", len(list))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("expected error after deletion")
	}
}

func TestMove(t *testing.T) {
	svc, sessions := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	t.Run("accepted step", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "up", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Success {
			t.Fatal("expected move to be accepted")
		}
		if result.Step == nil {
			t.Fatal("expected step info for an accepted move")
		}
		if result.Step.Dir != "up" {
			t.Errorf("expected dir up, got %q", result.Step.Dir)
		}
		if len(result.Events) == 0 {
			t.Error("expected at least a move event")
		}
		if sessions.saves == 0 {
			t.Error("accepted move should auto-save the session")
		}
	})

	t.Run("rejected move reports target", func(t *testing.T) {
		// Walk the player into the left wall.
		svc.Move(ctx, info.ID, "left", true)
		result, err := svc.Move(ctx, info.ID, "left", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Success {
			t.Fatal("expected move into the wall to be rejected")
		}
		if result.AttemptedTo == nil {
			t.Fatal("expected attempted-to info for a rejected move")
		}
		if result.AttemptedTo.TileType != "wall" {
			t.Errorf("expected wall target, got %q", result.AttemptedTo.TileType)
		}
		if result.AttemptedTo.Walkable {
			t.Error("wall must not be reported walkable")
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		if _, err := svc.Move(ctx, info.ID, "diagonal", false); err == nil {
			t.Error("expected error for invalid direction")
		}
	})

	t.Run("reset flag", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "up", true)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		hasReset := false
		for _, ev := range result.Events {
			if ev.Type == "reset" {
				hasReset = true
			}
		}
		if !hasReset {
			t.Error("expected a reset event")
		}
		if result.GameState.MoveCount != 1 {
			t.Errorf("expected move count 1 after reset+move, got %d", result.GameState.MoveCount)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nope", "up", false); err == nil {
			t.Error("expected error for unknown session")
		}
	})
}

func TestMovePushAndComplete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	// Level 0: two pushes right solve it.
	first, err := svc.Move(ctx, info.ID, "right", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if first.Step == nil || !first.Step.Pushed {
		t.Fatal("expected first move to be a push")
	}
	if first.Step.Completed {
		t.Fatal("level must not complete on the first push")
	}

	second, err := svc.Move(ctx, info.ID, "right", false)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !second.Step.Completed {
		t.Fatal("expected the second push to complete the level")
	}

	hasComplete := false
	for _, ev := range second.Events {
		if ev.Type == "level_complete" {
			hasComplete = true
		}
	}
	if !hasComplete {
		t.Error("expected a level_complete event")
	}
}

func TestMoveTo(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	t.Run("walk to cell", func(t *testing.T) {
		result, err := svc.MoveTo(ctx, info.ID, 3, 5)
		if err != nil {
			t.Fatalf("MoveTo failed: %v", err)
		}
		if !result.Success || result.StepsApplied == 0 {
			t.Fatal("expected a successful multi-step walk")
		}
		if result.GameState.MoveCount != result.StepsApplied {
			t.Errorf("move count %d does not match steps %d",
				result.GameState.MoveCount, result.StepsApplied)
		}
	})

	t.Run("wall click is a no-op", func(t *testing.T) {
		before, _ := svc.GetGameState(ctx, info.ID)
		count := before.MoveCount

		result, err := svc.MoveTo(ctx, info.ID, 0, 0)
		if err != nil {
			t.Fatalf("MoveTo failed: %v", err)
		}
		if result.Success || result.StepsApplied != 0 {
			t.Error("wall click must not apply moves")
		}
		if result.GameState.MoveCount != count {
			t.Error("wall click must not change the move count")
		}
	})
}

func TestResetAndLevels(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")
	svc.Move(ctx, info.ID, "up", false)

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.MoveCount != 0 {
		t.Errorf("expected move count 0 after reset, got %d", state.MoveCount)
	}

	state, err = svc.NextLevel(ctx, info.ID)
	if err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}
	if state.LevelIndex != 1 {
		t.Errorf("expected level 1, got %d", state.LevelIndex)
	}

	state, err = svc.SelectLevel(ctx, info.ID, 2)
	if err != nil {
		t.Fatalf("SelectLevel failed: %v", err)
	}
	if state.LevelIndex != 2 {
		t.Errorf("expected level 2, got %d", state.LevelIndex)
	}

	if _, err := svc.SelectLevel(ctx, info.ID, 99); err == nil {
		t.Error("expected error for out-of-range level")
	}
}

func TestGetMoveHistory(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")
	svc.Move(ctx, info.ID, "up", false)
	svc.Move(ctx, info.ID, "down", false)
	svc.Move(ctx, info.ID, "up", false)

	t.Run("defaults", func(t *testing.T) {
		resp, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if resp.TotalMoves != 3 {
			t.Errorf("expected 3 total moves, got %d", resp.TotalMoves)
		}
		if len(resp.Moves) != 3 {
			t.Errorf("expected 3 moves in page, got %d", len(resp.Moves))
		}
		// Default order is desc: most recent move first.
		if resp.Moves[0].MoveNumber != 3 {
			t.Errorf("expected move number 3 first, got %d", resp.Moves[0].MoveNumber)
		}
	})

	t.Run("ascending", func(t *testing.T) {
		resp, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Order: "asc"})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if resp.Moves[0].MoveNumber != 1 {
			t.Errorf("expected move number 1 first, got %d", resp.Moves[0].MoveNumber)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if len(resp.Moves) != 2 {
			t.Errorf("expected 2 moves on page 1, got %d", len(resp.Moves))
		}
		if !resp.HasNext || resp.HasPrevious {
			t.Error("expected has_next and not has_previous on page 1")
		}
		if resp.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", resp.TotalPages)
		}
	})
}

func TestListPacks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	packs, err := svc.ListPacks(ctx)
	if err != nil {
		t.Fatalf("ListPacks failed: %v", err)
	}
	if len(packs) != 1 {
		t.Fatalf("expected 1 pack, got %d", len(packs))
	}
	if packs[0].PackID != "classic" {
		t.Errorf("expected pack id classic, got %q", packs[0].PackID)
	}
	if packs[0].LevelCount != 3 {
		t.Errorf("expected 3 levels, got %d", packs[0].LevelCount)
	}
}

func TestConcurrentMoves(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir := "up"
			if i%2 == 0 {
				dir = "down"
			}
			svc.Move(ctx, info.ID, dir, false)
		}(i)
	}
	wg.Wait()

	state, err := svc.GetGameState(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetGameState failed: %v", err)
	}
	if _, found := engine.LocatePlayer(state.Grid); !found {
		t.Fatal("grid corrupted by concurrent moves")
	}
}
