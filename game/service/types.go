package service

import (
	"time"

	"github.com/wricardo/mcp-training/racegame/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string         `json:"id"`
	ConfigName     string         `json:"config_name"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	GameState      *StateView     `json:"game_state"`
	GameConfig     *engine.Config `json:"game_config"`
}

// StateView is a point-in-time picture of a game: lifecycle state, the
// occupancy grid and the progression values
type StateView struct {
	SessionID string           `json:"session_id,omitempty"`
	State     engine.GameState `json:"state"`
	Field     [][]int          `json:"field"`
	Lines     []string         `json:"lines"`
	engine.ParametersSnapshot
}

// NewStateView snapshots game
func NewStateView(sessionID string, game engine.Engine) *StateView {
	field := game.RenderField()
	return &StateView{
		SessionID:          sessionID,
		State:              game.CurrentState(),
		Field:              field.Rows(),
		Lines:              field.Lines(),
		ParametersSnapshot: game.SnapshotParameters(),
	}
}

// ActionResult contains the outcome of a single action
type ActionResult struct {
	Action        string           `json:"action"`
	Hold          bool             `json:"hold,omitempty"`
	PreviousState engine.GameState `json:"previous_state"`
	GameState     *StateView       `json:"game_state"`
	Events        []GameEvent      `json:"events,omitempty"`
}

// BulkActionResult contains the outcome of a sequence of actions
type BulkActionResult struct {
	RequestedActions int         `json:"requested_actions"`
	ActionsExecuted  int         `json:"actions_executed"`
	Truncated        bool        `json:"truncated,omitempty"`
	Limit            int         `json:"limit,omitempty"`
	StoppedReason    string      `json:"stopped_reason,omitempty"`
	StoppedOnAction  int         `json:"stopped_on_action,omitempty"` // 1-based
	GameState        *StateView  `json:"game_state"`
	Events           []GameEvent `json:"events"`
	ScoreDelta       int         `json:"score_delta"`
}

// GameEvent records a lifecycle transition caused by an action
type GameEvent struct {
	Type      string    `json:"type"` // "started", "paused", "resumed", "game_over", "restarted", "exited"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ConfigInfo provides information about a timing profile
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`
	Description    string `json:"description"`
	BaseTickMs     int    `json:"base_tick_ms"`
	FrameThreshold int    `json:"frame_threshold"`
	SpawnPeriod    int    `json:"spawn_period"`
}
