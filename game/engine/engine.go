package engine

import (
	"math/rand/v2"
	"sync/atomic"
)

// Engine is the programmatic surface of a single game instance
type Engine interface {
	// Input
	ProcessAction(action Action, hold bool)

	// Observation
	CurrentState() GameState
	RenderField() Field
	SnapshotParameters() ParametersSnapshot
}

// Game is the foreground state machine. It owns the lifecycle state, the
// player and the parameters, and starts and stops the simulation loop.
type Game struct {
	config  *Config
	state   stateCell
	params  *Parameters
	enemies *EnemySet
	player  atomic.Pointer[PlayerCar]
	spawner *Spawner
	score   *ScoreEngine
	rng     RandomSource
	loop    *simulationLoop
}

var _ Engine = (*Game)(nil)

// NewGame creates a game in the START state. The persisted high score is
// loaded from store; any load failure means no prior high score. store and
// rng may be nil.
func NewGame(config *Config, store HighScoreStore, rng RandomSource) (*Game, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalRandom{}
	}

	params := NewParameters(loadHighScore(store))
	g := &Game{
		config:  config,
		params:  params,
		enemies: NewEnemySet(),
		spawner: NewSpawner(config.SpawnPeriod),
		score:   NewScoreEngine(params, store),
		rng:     rng,
	}
	g.state.Store(StateStart)
	return g, nil
}

// NewGameWithDefaults creates a game with the classic timing profile
func NewGameWithDefaults(store HighScoreStore) *Game {
	g, _ := NewGame(DefaultConfig(), store, nil)
	return g
}

func loadHighScore(store HighScoreStore) int {
	if store == nil {
		return 0
	}
	score, err := store.LoadHighScore()
	if err != nil || score < 0 {
		return 0
	}
	return score
}

// ProcessAction applies one player action. Illegal actions for the current
// state are ignored. Must not be called concurrently on the same Game.
func (g *Game) ProcessAction(action Action, hold bool) {
	for g.dispatch(action, hold) {
	}
}

// dispatch runs one transition and reports whether the action must be
// processed again against the new state
func (g *Game) dispatch(action Action, hold bool) bool {
	switch g.state.Load() {
	case StateStart:
		return g.onStart(action)
	case StateMoving:
		return g.onMoving(action, hold)
	case StatePause:
		return g.onPause(action)
	case StateGameOver:
		return g.onGameOver()
	case StateExit:
		g.stopLoop()
	}
	return false
}

func (g *Game) onStart(action Action) bool {
	switch action {
	case ActionStart:
		g.enemies.Add(g.spawner.InitialSpawn(g.rng)...)
		player := SpawnPlayer()
		g.player.Store(&player)
		g.loop = newSimulationLoop(g)
		g.state.Store(StateMoving)
		g.loop.start()
	case ActionTerminate:
		g.state.Store(StateExit)
	}
	return false
}

func (g *Game) onMoving(action Action, hold bool) bool {
	switch action {
	case ActionLeft:
		g.switchLane(LaneLeft)
	case ActionRight:
		g.switchLane(LaneRight)
	case ActionPause:
		if !g.state.CompareAndSwap(StateMoving, StatePause) {
			// The loop ended the round first
			return true
		}
		g.params.setPaused(true)
	case ActionUp:
		if hold && g.loop != nil {
			g.loop.speedUp()
		}
	case ActionTerminate:
		g.cancelLoop()
		g.state.Store(StateExit)
		return true
	}
	return false
}

// switchLane moves the player one lane. A move into an enemy box leaves the
// player where it was and ends the round.
func (g *Game) switchLane(dir LaneDirection) {
	current := g.player.Load()
	if current == nil {
		return
	}
	moved, ok := current.SwitchLane(dir)
	if !ok {
		return
	}
	if g.enemies.AnyCollides(moved.Car) {
		g.cancelLoop()
		g.state.Store(StateGameOver)
		return
	}
	// A step landing between the check and the store is caught by the next step
	g.player.Store(&moved)
}

func (g *Game) onPause(action Action) bool {
	switch action {
	case ActionPause:
		g.params.setPaused(false)
	case ActionTerminate:
		g.params.setPaused(false)
		g.cancelLoop()
		g.state.Store(StateExit)
		return true
	}
	if !g.params.Paused() && !g.state.CompareAndSwap(StatePause, StateMoving) {
		return true
	}
	return false
}

// onGameOver tears the round down and hands the action to START
func (g *Game) onGameOver() bool {
	g.stopLoop()
	g.enemies.Clear()
	g.player.Store(nil)
	g.params.Reset()
	g.spawner.Reset()
	g.state.Store(StateStart)
	return true
}

func (g *Game) cancelLoop() {
	if g.loop != nil {
		g.loop.cancel()
	}
}

// stopLoop cancels the loop and waits for it to exit
func (g *Game) stopLoop() {
	if g.loop != nil {
		g.loop.stop()
	}
}

// Close terminates the game and waits for the loop to exit
func (g *Game) Close() {
	g.ProcessAction(ActionTerminate, false)
}

// CurrentState returns the lifecycle state
func (g *Game) CurrentState() GameState {
	return g.state.Load()
}

// RenderField composes the occupancy grid: enemy silhouettes first, then
// the player. Cells outside the field are dropped.
func (g *Game) RenderField() Field {
	var field Field
	for _, enemy := range g.enemies.Snapshot() {
		stamp(&field, enemy.Car)
	}
	if player := g.player.Load(); player != nil {
		stamp(&field, player.Car)
	}
	return field
}

func stamp(field *Field, car Car) {
	for _, p := range car.Model() {
		if p.X >= 0 && p.X < FieldWidth && p.Y >= 0 && p.Y < FieldHeight {
			field[p.Y][p.X] = 1
		}
	}
}

// SnapshotParameters returns the current score, level, speed and pause flag
func (g *Game) SnapshotParameters() ParametersSnapshot {
	return g.params.Snapshot()
}

// Config returns the timing profile of the game
func (g *Game) Config() *Config {
	return g.config
}

// globalRandom uses the goroutine-safe top-level math/rand/v2 source
type globalRandom struct{}

func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
