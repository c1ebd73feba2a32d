// Package mcp exposes the race game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, so an agent and a browser watching the same session over the
// WebSocket see the same game.
//
// MCP Tools:
//   - create_session, list_sessions, get_session, delete_session
//   - game_state: lifecycle state, rendered field and parameters
//   - action: one action, with an optional hold flag for acceleration
//   - bulk_actions: a bounded sequence of actions that stops on game over
//   - list_configs: available timing profiles
//   - game_instructions: rules and strategy notes
//   - describe_lane: per-lane occupancy over a band of rows
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The simulation keeps running between tool calls. Agents should pause
// while planning.
package mcp
