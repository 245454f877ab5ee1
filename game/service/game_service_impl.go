package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pushstone/sokoban/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, packs PackManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		packs:    packs,
	}
}

// getPackID returns the pack_id for a given pack display name, used for
// consistent API responses
func (s *gameServiceImpl) getPackID(packName string) string {
	availablePacks, err := s.packs.ListPacks()
	if err == nil {
		for _, p := range availablePacks {
			if p.Name == packName || p.PackID == packName {
				return p.PackID
			}
		}
	}
	if packName == "" {
		return s.packs.DefaultName()
	}
	return packName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, packName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pack *engine.LevelPack
	var err error
	if packName != "" {
		pack, err = s.packs.LoadPack(packName)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				availablePacks, listErr := s.packs.ListPacks()
				if listErr == nil && len(availablePacks) > 0 {
					var packIDs []string
					for _, p := range availablePacks {
						packIDs = append(packIDs, p.PackID)
					}
					return nil, fmt.Errorf("pack '%s' not found. Available packs: %v", packName, packIDs)
				}
				return nil, fmt.Errorf("pack '%s' not found. Use /api/packs to list available packs", packName)
			}
			return nil, fmt.Errorf("failed to load pack %s: %w", packName, err)
		}
	} else {
		pack = s.packs.GetDefault()
		packName = s.packs.DefaultName()
	}

	// Let session manager generate a proper short ID
	session, err := s.sessions.Create("", packName, pack)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PackName:       s.getPackID(sess.PackName),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		LevelCount:     sess.Engine.GetLevelCount(),
	}
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single directional move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Level reset to initial state",
			Timestamp: time.Now(),
		})
	}

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("invalid direction %q: must be up, down, left, or right", direction)
	}

	prevPos := sess.Engine.GetPlayerPosition()
	success := sess.Engine.Move(dir)
	newPos := sess.Engine.GetPlayerPosition()
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if success {
		moveEvents := s.extractMoveEvents(sess, prevPos, newPos, string(dir))
		result.Events = append(result.Events, moveEvents...)

		tileChar, tileType := "", ""
		if engine.InBounds(state.Grid, newPos) {
			tileChar, tileType = mapCellToCharAndType(state.Grid[newPos.Row][newPos.Col])
		}
		last := sess.Engine.GetLastMove()
		pushed := last != nil && last.Pushed
		result.Step = &StepInfo{
			Dir:       string(dir),
			From:      prevPos,
			To:        newPos,
			TileChar:  tileChar,
			TileType:  tileType,
			Pushed:    pushed,
			Completed: state.Completed,
			Success:   true,
		}
	} else {
		// Report the cell the rejected move was aimed at.
		dr, dc, _ := dir.Delta()
		attempted := engine.Position{Row: prevPos.Row + dr, Col: prevPos.Col + dc}
		var tileChar, tileType string
		walkable := false
		if !engine.InBounds(state.Grid, attempted) {
			tileChar = "#"
			tileType = "boundary"
		} else {
			cell := state.Grid[attempted.Row][attempted.Col]
			tileChar, tileType = mapCellToCharAndType(cell)
			walkable = engine.IsWalkable(state.Grid, attempted)
		}
		result.AttemptedTo = &AttemptInfo{
			Row:      attempted.Row,
			Col:      attempted.Col,
			TileChar: tileChar,
			TileType: tileType,
			Walkable: walkable,
		}
	}

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// MoveTo dispatches a click on a cell: an adjacent box becomes a push, an
// empty reachable cell becomes a walk along the shortest path
func (s *gameServiceImpl) MoveTo(ctx context.Context, sessionID string, row, col int) (*MoveToResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	target := engine.Position{Row: row, Col: col}
	prevPos := sess.Engine.GetPlayerPosition()
	steps := sess.Engine.MoveToCell(row, col)
	newPos := sess.Engine.GetPlayerPosition()
	state := sess.Engine.GetState()

	result := &MoveToResult{
		Success:      steps > 0,
		StepsApplied: steps,
		GameState:    state,
		Message:      state.Message,
		Target:       target,
	}

	if steps > 0 {
		result.Events = s.extractMoveEvents(sess, prevPos, newPos, "move_to")

		if err := s.sessions.Save(sessionID); err != nil {
			fmt.Printf("Warning: Failed to persist session %s after move-to: %v\n", sessionID, err)
		}
	}

	return result, nil
}

// Reset resets the current level of a session to its initial layout
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// NextLevel advances a session to the next level in its pack, wrapping to
// the first level after the last one
func (s *gameServiceImpl) NextLevel(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state, err := sess.Engine.AdvanceLevel()
	if err != nil {
		return nil, fmt.Errorf("failed to advance level: %w", err)
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after level change: %v\n", sessionID, err)
	}

	return state, nil
}

// SelectLevel jumps a session to a specific level index
func (s *gameServiceImpl) SelectLevel(ctx context.Context, sessionID string, index int) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state, err := sess.Engine.LoadLevel(index)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after level change: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPacks returns available level packs
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	return s.packs.ListPacks()
}

// LoadPack loads a specific level pack
func (s *gameServiceImpl) LoadPack(ctx context.Context, packName string) (*engine.LevelPack, error) {
	return s.packs.LoadPack(packName)
}

// SavePack saves a level pack to disk
func (s *gameServiceImpl) SavePack(ctx context.Context, packName string, pack *engine.LevelPack) error {
	return s.packs.SavePack(packName, pack)
}

// extractMoveEvents generates events from an accepted move
func (s *gameServiceImpl) extractMoveEvents(sess *Session, prevPos, newPos engine.Position, action string) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	events = append(events, GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", action, newPos.Row, newPos.Col),
		Timestamp: time.Now(),
		Position:  newPos,
	})

	if last := sess.Engine.GetLastMove(); last != nil && last.Pushed {
		events = append(events, GameEvent{
			Type:      "push",
			Message:   fmt.Sprintf("Pushed a box. %d goals remaining", engine.RemainingGoals(state.Grid)),
			Timestamp: time.Now(),
			Position:  newPos,
		})
	}

	if state.Completed {
		events = append(events, GameEvent{
			Type:      "level_complete",
			Message:   fmt.Sprintf("Level %s complete in %d moves!", state.LevelName, state.MoveCount),
			Timestamp: time.Now(),
		})
	}

	return events
}

func mapCellToCharAndType(cell engine.Cell) (string, string) {
	switch cell.Type {
	case engine.Wall:
		return "#", "wall"
	case engine.Floor:
		return " ", "floor"
	case engine.PlayerOnFloor:
		return "@", "player"
	case engine.PlayerOnGoal:
		return "P", "player_on_goal"
	case engine.BoxOnFloor:
		return "B", "box"
	case engine.BoxOnGoal:
		return "X", "box_on_goal"
	case engine.Goal:
		return "T", "goal"
	default:
		return "?", "unknown"
	}
}
