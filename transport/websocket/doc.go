// Package websocket pushes live game state to browser and bot clients.
//
// The simulation loop changes a game between requests, so REST polling
// misses frames. Clients subscribe to one session and receive a StateView
// message whenever the server broadcasts, and may send actions back.
//
// Architecture:
//
// A central Hub tracks clients per session. Each connection has a read pump
// and a write pump goroutine; the Run loop serializes registration.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {"action": "left", "hold": false}
//   - Outgoing: {"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Clients specify their session via query parameter (/ws?session=ab12).
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	hub.SetActionHandler(func(sessionID, action string, hold bool) {
//		result, err := gameService.ProcessAction(ctx, sessionID, action, hold)
//		if err == nil {
//			hub.BroadcastToSession(sessionID, result.GameState)
//		}
//	})
//
// Concurrency:
//
// Every Hub method is safe for concurrent use. A client whose send buffer
// is full is dropped rather than blocking the broadcaster.
package websocket
