package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/racegame/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// MaxBulkActions caps a single ProcessActions call
const MaxBulkActions = 50

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	ProcessAction(ctx context.Context, sessionID, action string, hold bool) (*ActionResult, error)
	ProcessActions(ctx context.Context, sessionID string, actions []string) (*BulkActionResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*StateView, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Config, error)
	SaveConfig(ctx context.Context, configName string, config *engine.Config) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.Config) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles timing profile loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Config
	DefaultID() string
	SaveConfig(name string, config *engine.Config) error
}

// Session represents an active game session
type Session struct {
	ID             string
	ConfigID       string
	Game           *engine.Game
	Config         *engine.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// Serializes foreground input to Game
	mu sync.Mutex
}

// Act forwards one action to the session's game
func (s *Session) Act(action engine.Action, hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Game.ProcessAction(action, hold)
}

// Close terminates the game and waits for its simulation loop to exit
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Game.Close()
}

// View snapshots the game for transports
func (s *Session) View() *StateView {
	return NewStateView(s.ID, s.Game)
}
