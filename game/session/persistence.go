package session

import (
	"time"

	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session record
	Save(session *service.Session) error

	// Load rebuilds a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session record
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON record of a session. LastState and
// LastParameters describe the game when the record was written and are not
// restored.
type PersistedSessionData struct {
	ID             string                    `json:"id"`
	ConfigID       string                    `json:"config_id"`
	CreatedAt      time.Time                 `json:"created_at"`
	LastAccessedAt time.Time                 `json:"last_accessed_at"`
	LastState      string                    `json:"last_state"`
	LastParameters engine.ParametersSnapshot `json:"last_parameters"`
}
