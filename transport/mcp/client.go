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
	"github.com/pushstone/sokoban/game/engine"
	"github.com/pushstone/sokoban/game/service"
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
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Sokoban Puzzle Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban Puzzle Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Push every box (B) onto a goal tile (T). The level is solved the moment
the last box lands on a goal. Boxes can only be PUSHED, never pulled.

AVAILABLE TOOLS:
- game_state: Get current game state
- move: Single move (up/down/left/right) - requires intent explanation
- move_to: Click-to-move to a cell (walks the shortest path, or pushes an adjacent box)
- reset_game: Reset the current level to its initial layout
- next_level: Advance to the next level in the pack
- select_level: Jump to a specific level index
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_packs: List available level packs
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific grid cell (helps verify B vs X vs T)

NOTE: The 'intent' parameter on move/move_to tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional level pack selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the level pack to play (optional, defaults to the built-in pack)",
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
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player in a direction. Walking into a box pushes it if the cell behind the box is free; otherwise nothing happens.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the level before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_to",
		Description: "Click a cell: an adjacent box gets pushed, an empty reachable cell is walked to along the shortest path. Clicks on walls or unreachable cells do nothing.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the target cell (0-based, row 0 at the top)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the target cell (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleMoveTo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the current level to its initial layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Advance to the next level in the pack (wraps to the first level after the last)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_level",
		Description: "Jump to a specific level in the pack by index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Level index (0-based)",
				},
			},
			Required: []string{"session_id", "level"},
		},
	}, c.handleSelectLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available level packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific cell in the grid, including its exact tile code. Useful for verifying whether a cell is a box (B), box-on-goal (X), or goal (T).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
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

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	packID, _ := args["pack_id"].(string)

	body := map[string]string{}
	if packID != "" {
		body["pack_id"] = packID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPack: %s (%d levels)\n\n%s",
		session.ID, session.PackName, session.LevelCount,
		formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level := ""
		if s.GameState != nil {
			level = s.GameState.LevelName
		}
		result += fmt.Sprintf("- %s (Pack: %s, Level: %s, Created: %s)\n",
			s.ID, s.PackName, level, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleMoveTo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"row": row,
		"col": col,
	}

	var result service.MoveToResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move-to", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveToResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/next-level", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSelectLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	level := int(args["level"].(float64))

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/level", sessionID),
		map[string]int{"level": level}, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch the current-level segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []service.PackInfo
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Level Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (pack_id: %s)\n  %s\n  Levels: %d\n\n",
			pack.Name, pack.PackID, pack.Description, pack.LevelCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Sokoban Puzzle Server - Complete Instructions

GAME OBJECTIVE:
Push every box onto a goal tile. The level is solved the instant the last
box lands on a goal.

GAME MECHANICS:
• Movement: up/down/left/right, one cell at a time
• Pushing: walking into a box pushes it one cell in the same direction,
  but only if the cell behind the box is free (floor or goal)
• Boxes can NEVER be pulled - a box pushed into a corner is stuck forever
• Rejected moves do nothing: no counter change, no history entry
• After the level is solved, further moves are ignored until reset or level change

GRID LEGEND:
• # - Wall (impassable)
• (space) - Floor (walkable)
• @ - Player on floor
• P - Player standing on a goal tile ⚠️ still the player, not a box!
• B - Box on floor (push me onto a goal)
• X - Box already on a goal (may still be pushed off again)
• T - Goal tile (target for boxes)

🤖 AI AGENTS - CRITICAL SUCCESS STRATEGIES:

⚠️ IRREVERSIBLE MOVES (MOST COMMON FAILURE POINT):
Sokoban punishes careless pushes permanently:

1. **Corner deadlocks**: A box pushed into a corner (walls on two adjacent
   sides) can never be moved again. If that corner is not a goal, the level
   is unwinnable - reset_game is the only way out.

2. **Wall deadlocks**: A box pushed flush against a wall can only slide
   along that wall. Check there is a goal somewhere along the wall before
   pushing a box against it.

3. **Think before every push**: Walking is always safe and free to undo;
   pushes are not. Plan the full push sequence before touching a box.

🗺️ SYSTEMATIC SOLVING APPROACH:
- Parse the grid character by character; note every box, goal, and wall
- For each box, list the goals it can reach and from which side you must
  stand to push it there
- Order the pushes: a box parked on a goal can block corridors other boxes need
- Use move_to for walking - it finds the shortest path automatically and
  never pushes anything by accident when the target is an empty cell

🎯 POSITIONING:
To push a box LEFT you must stand on its RIGHT. Much of Sokoban is walking
around boxes to reach the correct pushing side. If the pushing side is
unreachable, try moving other boxes first.

🔄 WHEN STUCK:
1. describe_cell to verify your reading of the grid (B vs X vs T confusion is common)
2. move_history to review what changed
3. reset_game and retry with a different push order

MOVEMENT COMMANDS:
- move: single step in a cardinal direction (pushes when a box is ahead)
- move_to: click a cell - adjacent box becomes a push, reachable empty cell
  becomes a multi-step walk
- reset_game: restore the current level to its initial layout

LEVEL NAVIGATION:
- next_level: advance to the next level (wraps past the last)
- select_level: jump straight to a level by index

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and level pack
- Use session-specific tools for multi-game management

Remember: walking is free, pushing is forever. Verify the grid carefully
and plan each push before committing. Good luck! 📦🎯`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !engine.InBounds(state.Grid, engine.Position{Row: row, Col: col}) {
		rows := len(state.Grid)
		cols := 0
		if rows > 0 {
			cols = len(state.Grid[0])
		}
		return mcp.NewToolResultError(fmt.Sprintf(
			"Cell (%d, %d) is out of bounds. Grid is %d rows x %d cols (0-based)",
			row, col, rows, cols)), nil
	}

	cell := state.Grid[row][col]
	cellChar, cellType, walkable, description := describeCell(cell)

	result := fmt.Sprintf(`Cell at (row %d, col %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Tile code: %s
Type: %s
Walkable: %v
Description: %s

IMPORTANT: The tile code '%s' is what appears in the grid display.
%s`,
		row, col,
		cellChar,
		cellType,
		walkable,
		description,
		cellChar,
		tileReminder(cellChar))

	return mcp.NewToolResultText(result), nil
}

func describeCell(cell engine.Cell) (char, cellType string, walkable bool, description string) {
	switch cell.Type {
	case engine.Wall:
		return "#", "Wall", false, "Wall - IMPASSABLE"
	case engine.Floor:
		return " ", "Floor", true, "Empty floor - safe to walk"
	case engine.Goal:
		return "T", "Goal", true, "Goal tile - push a box here to fill it"
	case engine.PlayerOnFloor:
		return "@", "Player", false, "Player's current position"
	case engine.PlayerOnGoal:
		return "P", "Player (on goal)", false, "Player standing on a goal tile - this goal is NOT filled"
	case engine.BoxOnFloor:
		return "B", "Box", false, "Box on floor - push it onto a goal"
	case engine.BoxOnGoal:
		return "X", "Box (on goal)", false, "Box already on a goal - objective satisfied here"
	default:
		return "?", "Unknown", false, "Unknown cell type"
	}
}

func tileReminder(char string) string {
	switch char {
	case "B":
		return "⚠️ REMINDER: 'B' is a box still on floor. It needs to reach a goal, and it can only be PUSHED, never pulled!"
	case "X":
		return "✅ This box already sits on a goal. Pushing it off would undo progress."
	case "T":
		return "🎯 This is an unfilled goal - a box needs to end up here."
	case "P":
		return "⚠️ REMINDER: 'P' is the PLAYER standing on a goal, not a box. The goal underneath still counts as unfilled."
	case "@":
		return "🚶 This is where you currently are."
	case "#":
		return "⚠️ Walls never move. Do not plan pushes into this cell."
	case " ":
		return "✅ Plain floor - walking here is always safe."
	default:
		return ""
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPack: %s (%d levels)\nCreated: %s\n\n%s",
		session.ID, session.PackName, session.LevelCount,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	playerPos, _ := engine.LocatePlayer(state.Grid)
	result.WriteString(fmt.Sprintf("Level %d: %s (%s) | Player: (%d,%d) | Moves: %d | Goals left: %d\n\n",
		state.LevelIndex, state.LevelName, state.PackName,
		playerPos.Row, playerPos.Col,
		state.MoveCount, engine.RemainingGoals(state.Grid)))

	for _, line := range engine.EncodeGrid(state.Grid) {
		result.WriteString(line)
		result.WriteString("\n")
	}

	if pm := possibleMoves(state); len(pm) > 0 {
		result.WriteString("\nPossible moves: ")
		result.WriteString(strings.Join(pm, ","))
		result.WriteString("\n")
	}

	if state.Completed {
		result.WriteString("\n🎉 LEVEL SOLVED!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// possibleMoves returns the directions that would currently be accepted,
// including pushes
func possibleMoves(state *engine.GameState) []string {
	if state == nil || state.Completed {
		return []string{}
	}
	player, ok := engine.LocatePlayer(state.Grid)
	if !ok {
		return []string{}
	}

	var res []string
	for _, d := range engine.Directions {
		dr, dc, _ := d.Delta()
		next := engine.Position{Row: player.Row + dr, Col: player.Col + dc}
		if !engine.InBounds(state.Grid, next) {
			continue
		}
		switch state.Grid[next.Row][next.Col].Type {
		case engine.Floor, engine.Goal:
			res = append(res, string(d))
		case engine.BoxOnFloor, engine.BoxOnGoal:
			beyond := engine.Position{Row: next.Row + dr, Col: next.Col + dc}
			if engine.IsWalkable(state.Grid, beyond) {
				res = append(res, string(d))
			}
		}
	}
	return res
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move rejected\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✓"
		if s.Pushed {
			status = "✓ push"
		}
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) tile=%s %s\n",
			s.Dir, s.From.Row, s.From.Col, s.To.Row, s.To.Col, s.TileChar, status)
	}

	// Rejection diagnostic (if available)
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		walkStr := "blocked"
		if a.Walkable {
			walkStr = "walkable"
		}
		response += fmt.Sprintf("Blocked: attempted (%d,%d) tile=%s %s (%s)\n",
			a.Row, a.Col, a.TileChar, a.TileType, walkStr)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatMoveToResult(result *service.MoveToResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString(fmt.Sprintf("✓ Applied %d step(s) toward (%d,%d)\n",
			result.StepsApplied, result.Target.Row, result.Target.Col))
	} else {
		b.WriteString(fmt.Sprintf("✗ No moves applied for target (%d,%d) - wall, unreachable, or already there\n",
			result.Target.Row, result.Target.Col))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		tag := ""
		if move.Pushed {
			tag = " [push]"
		}
		result += fmt.Sprintf("%d. %s (%d,%d)→(%d,%d)%s\n",
			num, move.Action,
			move.FromPosition.Row, move.FromPosition.Col,
			move.ToPosition.Row, move.ToPosition.Col, tag)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Level Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Level Segment — Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves on this level yet)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		tag := ""
		if move.Pushed {
			tag = " [push]"
		}
		b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d)%s\n",
			i+1, move.Action,
			move.FromPosition.Row, move.FromPosition.Col,
			move.ToPosition.Row, move.ToPosition.Col, tag))
	}
	return b.String()
}
