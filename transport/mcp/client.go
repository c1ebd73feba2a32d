package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/racegame/game/engine"
	"github.com/wricardo/mcp-training/racegame/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Brick Race",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Brick Race - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Dodge the enemy cars falling down a 3-lane road. Every car that leaves the
bottom of the field scores a point. The road keeps moving while you think.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- delete_session: End a session and stop its game
- game_state: Get the current field and parameters
- action: Send one action (start, pause, terminate, left, right, up, down, action)
- bulk_actions: Send several actions in order
- list_configs: List available timing profiles
- game_instructions: Get comprehensive game instructions and rules
- describe_lane: Report what occupies each lane in a band of rows`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional timing profile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Timing profile to use, e.g. classic, turbo, relaxed (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a session and stop its simulation",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleDeleteSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current lifecycle state, field and parameters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action",
		Description: "Send one player action to the game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        engine.ActionNames(),
					"description": "Action to send",
				},
				"hold": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the key is held. A held 'up' accelerates the road",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this action (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "action"},
		},
	}, c.handleAction)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_actions",
		Description: "Execute several actions in sequence. Stops early on game over or exit",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"actions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": engine.ActionNames(),
					},
					"description": fmt.Sprintf("Array of actions (at most %d are executed)", service.MaxBulkActions),
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of actions",
				},
			},
			Required: []string{"session_id", "actions"},
		},
	}, c.handleBulkActions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available timing profiles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_lane",
		Description: "Report which lanes are blocked between two rows. Useful before switching lanes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from_row": map[string]interface{}{
					"type":        "integer",
					"description": "First row to inspect (0-based, top of the field). Defaults to 12",
				},
				"to_row": map[string]interface{}{
					"type":        "integer",
					"description": "Last row to inspect (inclusive). Defaults to 19",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDescribeLane)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSend the 'start' action to begin.\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		state := "unknown"
		if s.GameState != nil {
			state = s.GameState.State.String()
		}
		fmt.Fprintf(&result, "- %s (Config: %s, State: %s, Created: %s)\n",
			s.ID, s.ConfigName, state, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}
	if err := c.apiCall(ctx, "DELETE", "/api/sessions/"+sessionID, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state service.StateView
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID+"/state", nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatStateView(&state)), nil
}

func (c *Client) handleAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	action, _ := args["action"].(string)
	hold, _ := args["hold"].(bool)

	// intent is rubber duck debugging only
	_, _ = args["intent"].(string)

	body := map[string]interface{}{
		"action": action,
		"hold":   hold,
	}

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/actions", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleBulkActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	actionsRaw, _ := args["actions"].([]interface{})

	actions := make([]string, 0, len(actionsRaw))
	for _, a := range actionsRaw {
		if action, ok := a.(string); ok {
			actions = append(actions, action)
		}
	}

	body := map[string]interface{}{
		"actions": actions,
	}

	var result service.BulkActionResult
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/bulk-actions", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkActionResult(&result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&result, "• %s (%s)\n  %s\n  Tick: %dms, Step threshold: %d, Spawn every %d steps\n\n",
			config.ConfigID, config.Name, config.Description,
			config.BaseTickMs, config.FrameThreshold, config.SpawnPeriod)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`🏎️ Brick Race - Complete Instructions

GAME OBJECTIVE:
Survive as long as possible on a 3-lane road while enemy cars fall towards you.

FIELD:
• %d rows by %d columns, row 0 at the top
• '#' is an occupied cell, '.' is empty
• Every car is a %dx%d box. The player car sits at the bottom of the field
• Lanes start at columns 0, 3 and 6

LIFECYCLE:
• START: send 'start' to begin a round
• MOVING: the road is live, enemies advance on their own
• PAUSE: 'pause' toggles between MOVING and PAUSE
• GAMEOVER: a collision ended the round. Any action restarts from START
• EXIT: 'terminate' ends the game for good

ACTIONS:
• left / right: switch one lane. Switching into an enemy ends the round
• up with hold=true: burst the road forward
• terminate: end the game

SCORING:
• Every enemy car that leaves the field scores one point
• Every %d points raise the level (max %d); even levels above 2 raise the speed
• The high score survives between games

STRATEGY:
• Read the rows just above the player before switching lanes
• Use describe_lane to check a lane before moving into it
• Pause while you plan. The road keeps moving between tool calls!

Good luck on the road! 🏁`,
		engine.FieldHeight, engine.FieldWidth, engine.CarWidth, engine.CarHeight,
		engine.PointsPerLevel, engine.MaxLevel)

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeLane(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	from, to := 12, engine.FieldHeight-1
	if v, ok := args["from_row"].(float64); ok {
		from = int(v)
	}
	if v, ok := args["to_row"].(float64); ok {
		to = int(v)
	}
	if from < 0 || to >= engine.FieldHeight || from > to {
		return mcp.NewToolResultError(fmt.Sprintf("Rows %d..%d are out of bounds. The field has rows 0-%d",
			from, to, engine.FieldHeight-1)), nil
	}

	var state service.StateView
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID+"/state", nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeLanes(&state, from, to)), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatStateView(session.GameState))
}

func formatStateView(state *service.StateView) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "State: %s | Score: %d | High: %d | Level: %d | Speed: %d\n\n",
		state.State, state.Score, state.HighestScore, state.Level, state.Speed)

	for _, line := range state.Lines {
		result.WriteString(line)
		result.WriteString("\n")
	}

	switch state.State {
	case engine.StateGameOver:
		result.WriteString("\n💥 GAME OVER - send any action to restart")
	case engine.StatePause:
		result.WriteString("\n⏸ PAUSED")
	case engine.StateExit:
		result.WriteString("\n🏁 EXITED")
	}

	return result.String()
}

func formatEvents(events []service.GameEvent) string {
	var result strings.Builder
	for _, e := range events {
		fmt.Fprintf(&result, "Event: %s - %s\n", e.Type, e.Message)
	}
	return result.String()
}

func formatActionResult(result *service.ActionResult) string {
	var response strings.Builder
	fmt.Fprintf(&response, "✓ %s", result.Action)
	if result.Hold {
		response.WriteString(" (held)")
	}
	if result.GameState != nil {
		fmt.Fprintf(&response, ": %s → %s\n", result.PreviousState, result.GameState.State)
	} else {
		response.WriteString("\n")
	}
	response.WriteString(formatEvents(result.Events))
	response.WriteString("\n")
	response.WriteString(formatStateView(result.GameState))
	return response.String()
}

func formatBulkActionResult(result *service.BulkActionResult) string {
	var response strings.Builder
	fmt.Fprintf(&response, "Executed %d/%d actions", result.ActionsExecuted, result.RequestedActions)
	if result.Truncated {
		fmt.Fprintf(&response, " (truncated to %d)", result.Limit)
	}
	response.WriteString("\n")
	if result.StoppedReason != "" {
		fmt.Fprintf(&response, "Stopped on action %d: %s\n", result.StoppedOnAction, result.StoppedReason)
	}
	fmt.Fprintf(&response, "Score delta: %+d\n", result.ScoreDelta)
	response.WriteString(formatEvents(result.Events))
	response.WriteString("\n")
	response.WriteString(formatStateView(result.GameState))
	return response.String()
}

// describeLanes reports, per lane, the occupied rows in [from, to]
func describeLanes(state *service.StateView, from, to int) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Lanes between rows %d and %d:\n", from, to)

	for lane := 0; lane < engine.LaneCount; lane++ {
		left := lane * engine.LaneWidth
		var rows []string
		for y := from; y <= to && y < len(state.Field); y++ {
			for x := left; x < left+engine.LaneWidth && x < len(state.Field[y]); x++ {
				if state.Field[y][x] != 0 {
					rows = append(rows, fmt.Sprint(y))
					break
				}
			}
		}
		if len(rows) == 0 {
			fmt.Fprintf(&result, "Lane %d (columns %d-%d): clear\n", lane, left, left+engine.LaneWidth-1)
		} else {
			fmt.Fprintf(&result, "Lane %d (columns %d-%d): occupied at rows %s\n",
				lane, left, left+engine.LaneWidth-1, strings.Join(rows, ","))
		}
	}
	return result.String()
}
