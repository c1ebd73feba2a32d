package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session in the START state
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	configID := configName
	var config *engine.Config
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				return nil, s.configNotFound(configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		configID = s.configs.DefaultID()
	}

	// Let the session manager generate the ID
	session, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// configNotFound lists the available profiles in the error message
func (s *gameServiceImpl) configNotFound(configName string) error {
	available, err := s.configs.ListConfigs()
	if err != nil || len(available) == 0 {
		return fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
	}
	ids := make([]string, 0, len(available))
	for _, cfg := range available {
		ids = append(ids, cfg.ConfigID)
	}
	return fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, ids)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession terminates and removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// ProcessAction parses and applies one action
func (s *gameServiceImpl) ProcessAction(ctx context.Context, sessionID, action string, hold bool) (*ActionResult, error) {
	parsed, err := engine.ParseAction(action)
	if err != nil {
		return nil, err
	}

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	prev := session.Game.CurrentState()
	session.Act(parsed, hold)
	view := session.View()

	s.persist(sessionID)

	return &ActionResult{
		Action:        parsed.String(),
		Hold:          hold,
		PreviousState: prev,
		GameState:     view,
		Events:        transitionEvents(prev, view.State),
	}, nil
}

// ProcessActions applies a sequence of actions, stopping when a round ends.
// Every name is validated before anything is applied.
func (s *gameServiceImpl) ProcessActions(ctx context.Context, sessionID string, actions []string) (*BulkActionResult, error) {
	parsed := make([]engine.Action, 0, len(actions))
	for i, name := range actions {
		action, err := engine.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i+1, err)
		}
		parsed = append(parsed, action)
	}

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkActionResult{
		RequestedActions: len(actions),
		Events:           make([]GameEvent, 0),
	}
	if len(parsed) > MaxBulkActions {
		result.Truncated = true
		result.Limit = MaxBulkActions
		parsed = parsed[:MaxBulkActions]
	}

	startScore := session.Game.SnapshotParameters().Score
	for i, action := range parsed {
		if err := ctx.Err(); err != nil {
			result.StoppedReason = "cancelled"
			result.StoppedOnAction = i + 1
			break
		}

		prev := session.Game.CurrentState()
		session.Act(action, true)
		next := session.Game.CurrentState()
		result.ActionsExecuted++
		result.Events = append(result.Events, transitionEvents(prev, next)...)

		if next == engine.StateGameOver || next == engine.StateExit {
			if i < len(parsed)-1 {
				result.StoppedReason = stopReason(next)
				result.StoppedOnAction = i + 1
			}
			break
		}
	}

	result.GameState = session.View()
	result.ScoreDelta = result.GameState.Score - startScore

	s.persist(sessionID)
	return result, nil
}

func stopReason(state engine.GameState) string {
	if state == engine.StateExit {
		return "exited"
	}
	return "game_over"
}

// GetGameState returns a fresh snapshot of the session's game
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*StateView, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.View(), nil
}

// ListConfigs returns all available timing profiles
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a timing profile by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig validates and stores a timing profile
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.Config) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return session, nil
}

func (s *gameServiceImpl) persist(sessionID string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after action: %v", sessionID, err)
	}
}

func sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     session.ConfigID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.View(),
		GameConfig:     session.Config,
	}
}

// transitionEvents describes the lifecycle change between two observed states
func transitionEvents(prev, next engine.GameState) []GameEvent {
	if prev == next {
		return nil
	}

	now := time.Now()
	event := func(typ, message string) GameEvent {
		return GameEvent{Type: typ, Message: message, Timestamp: now}
	}

	var events []GameEvent
	if prev == engine.StateGameOver {
		events = append(events, event("restarted", "Round reset after game over"))
	}

	switch next {
	case engine.StateMoving:
		if prev == engine.StatePause {
			events = append(events, event("resumed", "Game resumed"))
		} else {
			events = append(events, event("started", "Round started"))
		}
	case engine.StatePause:
		events = append(events, event("paused", "Game paused"))
	case engine.StateGameOver:
		events = append(events, event("game_over", "Crashed into an enemy car"))
	case engine.StateExit:
		events = append(events, event("exited", "Game terminated"))
	}
	return events
}
