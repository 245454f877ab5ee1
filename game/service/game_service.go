package service

import (
	"context"
	"time"

	"github.com/pushstone/sokoban/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, packName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	MoveTo(ctx context.Context, sessionID string, row, col int) (*MoveToResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	NextLevel(ctx context.Context, sessionID string) (*engine.GameState, error)
	SelectLevel(ctx context.Context, sessionID string, index int) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Level packs
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	LoadPack(ctx context.Context, packName string) (*engine.LevelPack, error)
	SavePack(ctx context.Context, packName string, pack *engine.LevelPack) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, packName string, pack *engine.LevelPack) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, packName string, pack *engine.LevelPack) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PackManager handles level pack loading
type PackManager interface {
	LoadPack(name string) (*engine.LevelPack, error)
	ListPacks() ([]*PackInfo, error)
	GetDefault() *engine.LevelPack
	DefaultName() string
	SavePack(name string, pack *engine.LevelPack) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	PackName       string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
