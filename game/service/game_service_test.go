package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	mu       sync.Mutex
	sessions map[string]*service.Session
	saves    int
	saveErr  error
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, configID string, config *engine.Config) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	game, err := engine.NewGame(config, nil, nil)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Game:           game,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*service.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	m.mu.Lock()
	session, exists := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !exists {
		return service.ErrSessionNotFound
	}
	session.Close()
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

func (m *MockSessionManager) Save(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	return m.saveErr
}

func (m *MockSessionManager) closeAll() {
	for _, s := range m.List() {
		s.Close()
	}
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.Config
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.Config{
			"frozen": frozenConfig("Frozen"),
			"fast":   fastConfig(),
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.Config, error) {
	if config, exists := m.configs[name]; exists {
		return config, nil
	}
	return nil, fmt.Errorf("%w: %q", service.ErrConfigNotFound, name)
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var result []*service.ConfigInfo
	for _, id := range []string{"fast", "frozen"} {
		config := m.configs[id]
		result = append(result, &service.ConfigInfo{
			Filename: id + ".json",
			ConfigID: id,
			Name:     config.Name,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.Config {
	return m.configs["frozen"]
}

func (m *MockConfigManager) DefaultID() string {
	return "frozen"
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.Config) error {
	if err := engine.ValidateConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	return nil
}

// frozenConfig never steps on its own
func frozenConfig(name string) *engine.Config {
	return &engine.Config{
		Name:            name,
		BaseTickMs:      1,
		FrameThreshold:  1 << 40,
		SleepIntervalMs: 5,
		SpawnPeriod:     10,
	}
}

func fastConfig() *engine.Config {
	return &engine.Config{
		Name:            "Fast",
		BaseTickMs:      50,
		FrameThreshold:  50,
		BurstIncrement:  500,
		SleepIntervalMs: 1,
		SpawnPeriod:     10,
	}
}

func setupService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	t.Cleanup(sessions.closeAll)
	return service.NewGameService(sessions, NewMockConfigManager()), sessions
}

func TestGameService_CreateSession(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	t.Run("default config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.ConfigName != "frozen" {
			t.Errorf("Expected default config id frozen, got %s", info.ConfigName)
		}
		if info.GameState == nil || info.GameState.State != engine.StateStart {
			t.Errorf("Expected START state, got %+v", info.GameState)
		}
		if info.GameState.Level != 1 || info.GameState.Speed != 1 {
			t.Errorf("Expected level 1 speed 1, got %+v", info.GameState.ParametersSnapshot)
		}
		if len(info.GameState.Field) != engine.FieldHeight || len(info.GameState.Field[0]) != engine.FieldWidth {
			t.Error("Expected a 20x10 field")
		}
	})

	t.Run("named config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "fast")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.ConfigName != "fast" || info.GameConfig.Name != "Fast" {
			t.Errorf("Unexpected config: %s / %s", info.ConfigName, info.GameConfig.Name)
		}
	})

	t.Run("unknown config", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nitro")
		if !errors.Is(err, service.ErrConfigNotFound) {
			t.Fatalf("Expected ErrConfigNotFound, got %v", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "fast") || !strings.Contains(msg, "frozen") {
			t.Errorf("Expected available configs in message, got %q", msg)
		}
	})
}

func TestGameService_ProcessAction(t *testing.T) {
	svc, sessions := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	result, err := svc.ProcessAction(ctx, info.ID, "START", false)
	if err != nil {
		t.Fatalf("Failed to process action: %v", err)
	}
	if result.Action != "start" || result.PreviousState != engine.StateStart {
		t.Errorf("Unexpected result header: %+v", result)
	}
	if result.GameState.State != engine.StateMoving {
		t.Errorf("Expected MOVING, got %s", result.GameState.State)
	}
	if len(result.Events) != 1 || result.Events[0].Type != "started" {
		t.Errorf("Expected a started event, got %+v", result.Events)
	}
	if result.GameState.Field[16][4] != 1 {
		t.Error("Expected player on the field")
	}

	result, _ = svc.ProcessAction(ctx, info.ID, "pause", false)
	if result.GameState.State != engine.StatePause || !result.GameState.Paused {
		t.Errorf("Expected paused game, got %+v", result.GameState)
	}
	if result.Events[0].Type != "paused" {
		t.Errorf("Expected paused event, got %+v", result.Events)
	}

	result, _ = svc.ProcessAction(ctx, info.ID, "pause", false)
	if result.Events[0].Type != "resumed" {
		t.Errorf("Expected resumed event, got %+v", result.Events)
	}

	result, _ = svc.ProcessAction(ctx, info.ID, "left", false)
	if len(result.Events) != 0 || result.GameState.Field[16][1] != 1 {
		t.Errorf("Expected a quiet lane change, got %+v", result.Events)
	}

	if sessions.saves < 4 {
		t.Errorf("Expected session to be persisted after each action, got %d saves", sessions.saves)
	}
}

func TestGameService_ProcessActionErrors(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	if _, err := svc.ProcessAction(ctx, info.ID, "jump", false); !errors.Is(err, engine.ErrUnknownAction) {
		t.Errorf("Expected ErrUnknownAction, got %v", err)
	}
	if _, err := svc.ProcessAction(ctx, "missing", "start", false); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_PersistFailureIsNotFatal(t *testing.T) {
	svc, sessions := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")
	sessions.saveErr = errors.New("disk full")

	if _, err := svc.ProcessAction(ctx, info.ID, "start", false); err != nil {
		t.Errorf("Expected action to succeed despite save failure: %v", err)
	}
}

func TestGameService_TerminateIsFinal(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	svc.ProcessAction(ctx, info.ID, "start", false)
	result, err := svc.ProcessAction(ctx, info.ID, "terminate", false)
	if err != nil {
		t.Fatal(err)
	}
	if result.GameState.State != engine.StateExit || result.Events[0].Type != "exited" {
		t.Errorf("Expected EXIT with exited event, got %s %+v", result.GameState.State, result.Events)
	}

	result, _ = svc.ProcessAction(ctx, info.ID, "start", false)
	if result.GameState.State != engine.StateExit || len(result.Events) != 0 {
		t.Errorf("Expected terminated session to stay in EXIT, got %s", result.GameState.State)
	}
}

func TestGameService_ProcessActions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	result, err := svc.ProcessActions(ctx, info.ID, []string{"start", "left", "right", "right", "pause"})
	if err != nil {
		t.Fatalf("Failed to process actions: %v", err)
	}
	if result.RequestedActions != 5 || result.ActionsExecuted != 5 {
		t.Errorf("Expected 5 executed actions, got %+v", result)
	}
	if result.GameState.State != engine.StatePause {
		t.Errorf("Expected PAUSE, got %s", result.GameState.State)
	}
	if result.GameState.Field[16][7] != 1 {
		t.Error("Expected player in the right lane")
	}
	if len(result.Events) != 2 || result.Events[0].Type != "started" || result.Events[1].Type != "paused" {
		t.Errorf("Unexpected events: %+v", result.Events)
	}

	result, _ = svc.ProcessActions(ctx, info.ID, []string{"terminate", "start", "start"})
	if result.ActionsExecuted != 1 || result.StoppedReason != "exited" || result.StoppedOnAction != 1 {
		t.Errorf("Expected stop after terminate, got %+v", result)
	}
}

func TestGameService_ProcessActionsValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	_, err := svc.ProcessActions(ctx, info.ID, []string{"start", "fly"})
	if !errors.Is(err, engine.ErrUnknownAction) {
		t.Fatalf("Expected ErrUnknownAction, got %v", err)
	}
	state, _ := svc.GetGameState(ctx, info.ID)
	if state.State != engine.StateStart {
		t.Errorf("Expected no action applied on validation failure, got %s", state.State)
	}
}

func TestGameService_ProcessActionsTruncated(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	actions := make([]string, service.MaxBulkActions+10)
	for i := range actions {
		actions[i] = "down"
	}
	result, err := svc.ProcessActions(ctx, info.ID, actions)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Truncated || result.Limit != service.MaxBulkActions || result.ActionsExecuted != service.MaxBulkActions {
		t.Errorf("Expected truncation at %d, got %+v", service.MaxBulkActions, result)
	}
}

func TestGameService_GameOverFromLoop(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "fast")
	svc.ProcessAction(ctx, info.ID, "start", false)

	// Random traffic eventually reaches the middle lane
	deadline := time.Now().Add(20 * time.Second)
	for {
		state, err := svc.GetGameState(ctx, info.ID)
		if err != nil {
			t.Fatal(err)
		}
		if state.State == engine.StateGameOver {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected GAMEOVER, still %s", state.State)
		}
		time.Sleep(5 * time.Millisecond)
	}

	result, err := svc.ProcessAction(ctx, info.ID, "start", false)
	if err != nil {
		t.Fatal(err)
	}
	if result.GameState.State != engine.StateMoving || result.GameState.Score != 0 {
		t.Errorf("Expected a fresh round, got %s with score %d", result.GameState.State, result.GameState.Score)
	}
	if len(result.Events) != 2 || result.Events[0].Type != "restarted" || result.Events[1].Type != "started" {
		t.Errorf("Expected restarted and started events, got %+v", result.Events)
	}
}

func TestGameService_Sessions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first, _ := svc.CreateSession(ctx, "")
	svc.CreateSession(ctx, "fast")

	sessions, err := svc.ListSessions(ctx)
	if err != nil || len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d (%v)", len(sessions), err)
	}

	info, err := svc.GetSession(ctx, first.ID)
	if err != nil || info.ID != first.ID {
		t.Errorf("Expected session %s, got %+v (%v)", first.ID, info, err)
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetSession(ctx, first.ID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_Configs(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	configs, err := svc.ListConfigs(ctx)
	if err != nil || len(configs) != 2 {
		t.Fatalf("Expected 2 configs, got %d (%v)", len(configs), err)
	}

	config, err := svc.LoadConfig(ctx, "fast")
	if err != nil || config.FrameThreshold != 50 {
		t.Errorf("Unexpected config: %+v (%v)", config, err)
	}

	custom := frozenConfig("Custom")
	if err := svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateSession(ctx, "custom"); err != nil {
		t.Errorf("Expected saved config to be usable: %v", err)
	}
}

func TestGameService_ConcurrentActions(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")
	svc.ProcessAction(ctx, info.ID, "start", false)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actions := []string{"left", "right", "pause", "up"}
			for j := 0; j < 25; j++ {
				if _, err := svc.ProcessAction(ctx, info.ID, actions[(i+j)%len(actions)], true); err != nil {
					t.Errorf("Concurrent action failed: %v", err)
					return
				}
				svc.GetGameState(ctx, info.ID)
			}
		}(i)
	}
	wg.Wait()

	state, _ := svc.GetGameState(ctx, info.ID)
	switch state.State {
	case engine.StateMoving, engine.StatePause:
	default:
		t.Errorf("Expected MOVING or PAUSE after concurrent input, got %s", state.State)
	}
}
