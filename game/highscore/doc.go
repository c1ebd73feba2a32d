// Package highscore provides implementations of engine.HighScoreStore.
//
// FileStore keeps the best score as a single decimal integer in a text file,
// the same format the desktop race game used ("race_score"). MemoryStore
// keeps it in memory and can be switched into a failing mode for tests.
// NopStore never persists anything.
//
// Usage:
//
//	store := highscore.NewFileStore("race_score")
//	game, err := engine.NewGame(engine.DefaultConfig(), store, nil)
//
// Stores are safe for concurrent use; several game sessions may share one.
package highscore
