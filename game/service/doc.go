// Package service provides the business logic layer for the lane race game.
//
// The service package implements:
//   - Multi-session game management
//   - Timing profile loading
//   - Action parsing and dispatch
//   - Per-session input serialization
//
// Core Interfaces:
//
// GameService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and lists timing profiles.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP/
// terminal) and the game engine. Each session owns its own engine.Game, with
// its own simulation goroutine, and all sessions share one high score store.
// The engine requires a single foreground caller per game, so every action
// goes through Session.Act, which holds the session lock.
//
// Usage:
//
//	sessionMgr := session.NewManager(highscore.NewFileStore("race_score"))
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.ProcessAction(ctx, info.ID, "start", false)
//
// Game state keeps changing between calls because the simulation loop runs
// in the background; GetGameState always returns a fresh snapshot.
package service
