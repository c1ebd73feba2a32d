// Package api provides the HTTP REST API for the lane race game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "turbo"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Terminate and remove a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current state, field and parameters
//   - POST /api/sessions/{id}/actions - Apply one action
//   - POST /api/sessions/{id}/bulk-actions - Apply a sequence of actions
//
// Configuration:
//   - GET /api/configs - List timing profiles
//   - POST /api/configs - Save a timing profile
//   - GET /api/configs/{name} - Get a timing profile
//
// Other:
//   - GET /api/health - Liveness probe
//   - GET /ws?session={id} - WebSocket state stream
//
// Actions are sent as JSON:
//
//	{"action": "start|pause|terminate|left|right|up|down|action", "hold": false}
//	{"actions": ["start", "left", "up"]}
//
// "hold" only matters for "up", where it injects a speed burst.
//
// Error Handling:
//
// Errors are returned as JSON ({"error": "message"}). Unknown sessions and
// profiles map to 404, unknown actions and invalid profiles to 400.
//
// The game keeps moving between requests; clients that need every frame
// should use the WebSocket stream instead of polling the state endpoint.
package api
