// Package engine provides the core simulation for the lane race game.
//
// The engine package implements:
//   - Car geometry, occupancy masks and bounding-box collision
//   - The enemy arena shared between the foreground and the simulation loop
//   - Enemy spawning and off-grid cleanup
//   - Score, level and speed progression
//   - The background simulation loop and the foreground state machine
//
// Core Types:
//
// Game is the state machine and the only entry point for player actions and
// rendering. It owns the canonical GameState, the PlayerCar and the
// Parameters. While a round is running, a single simulation loop goroutine
// advances the shared EnemySet and may force the game into GAMEOVER.
//
// Usage:
//
//	game := engine.NewGameWithDefaults(highscore.NewFileStore("race_score"))
//
//	game.ProcessAction(engine.ActionStart, false)
//	game.ProcessAction(engine.ActionLeft, false)
//
//	field := game.RenderField()
//	params := game.SnapshotParameters()
//
// Concurrency:
//
// ProcessAction must not be called concurrently for the same Game. Reads
// (CurrentState, RenderField, SnapshotParameters) are safe from any goroutine.
// Whenever the loop is stopped by the foreground, ProcessAction waits for the
// loop goroutine to exit before the enemy arena is cleared.
//
// Game Rules:
//
// The player shifts between three lanes. Enemies scroll down one row per
// simulation step; each enemy leaving the grid adds one point. Every five
// points raise the level (up to 10), and every even level above 2 raises the
// speed, which shortens the interval between simulation steps.
package engine
