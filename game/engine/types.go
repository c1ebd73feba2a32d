package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Field dimensions
	FieldHeight = 20
	FieldWidth  = 10

	// Car bounding box
	CarWidth  = 3
	CarHeight = 4

	// Lane layout
	LaneCount = 3
	LaneWidth = 3
	MaxLaneX  = LaneCount*LaneWidth - 1

	// Progression limits
	InitialLevel   = 1
	InitialSpeed   = 1
	MaxLevel       = 10
	PointsPerLevel = 5
)

var ErrUnknownAction = errors.New("unknown action")

// Position represents x,y grid coordinates. Y grows downwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by dx, dy
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Action is a discrete player input
type Action int

const (
	ActionStart Action = iota
	ActionPause
	ActionTerminate
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionAction
)

var actionNames = map[Action]string{
	ActionStart:     "start",
	ActionPause:     "pause",
	ActionTerminate: "terminate",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionUp:        "up",
	ActionDown:      "down",
	ActionAction:    "action",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction converts a case-insensitive action name into an Action
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// ActionNames lists every accepted action name in declaration order
func ActionNames() []string {
	names := make([]string, 0, len(actionNames))
	for a := ActionStart; a <= ActionAction; a++ {
		names = append(names, actionNames[a])
	}
	return names
}

// GameState is the lifecycle state of a game
type GameState int32

const (
	StateStart GameState = iota
	StateMoving
	StatePause
	StateGameOver
	StateExit
)

func (s GameState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateMoving:
		return "MOVING"
	case StatePause:
		return "PAUSE"
	case StateGameOver:
		return "GAMEOVER"
	case StateExit:
		return "EXIT"
	default:
		return fmt.Sprintf("STATE(%d)", int32(s))
	}
}

// MarshalText encodes the state by name so JSON payloads stay readable
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText
func (s *GameState) UnmarshalText(text []byte) error {
	for state := StateStart; state <= StateExit; state++ {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", text)
}

// Field is a binary occupancy grid, indexed [row][column]
type Field [FieldHeight][FieldWidth]int

// Lines renders the field as text, '#' for occupied cells and '.' for empty ones
func (f *Field) Lines() []string {
	lines := make([]string, 0, FieldHeight)
	var b strings.Builder
	for _, row := range f {
		b.Reset()
		for _, cell := range row {
			if cell != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Rows returns the field as nested slices, the shape used by JSON clients
func (f *Field) Rows() [][]int {
	rows := make([][]int, FieldHeight)
	for y := range f {
		rows[y] = append([]int(nil), f[y][:]...)
	}
	return rows
}

// HighScoreStore persists the highest score across games.
// LoadHighScore failures are treated as "no prior high score"; SaveHighScore
// failures are swallowed by the engine.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// RandomSource is the randomness consumed by the spawner.
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}
