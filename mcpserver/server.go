package mcpserver

import (
	"context"
	"fmt"
	"math"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/katalvlaran/rushhour/astar"
	"github.com/katalvlaran/rushhour/explore"
	"github.com/katalvlaran/rushhour/heuristic"
	"github.com/katalvlaran/rushhour/puzzle"
	"github.com/katalvlaran/rushhour/report"
)

// Config limits the work a single tool call may do.
type Config struct {
	Version   string
	MaxNodes  int           // cap on solve_puzzle budgets; 0 means none
	MaxStates int           // cap on analyze_board; 0 means none
	Timeout   time.Duration // per call; 0 means none
	Logger    *slog.Logger
}

// Server is an MCP server with the solver tools registered.
type Server struct {
	cfg Config
	log *slog.Logger
	mcp *server.MCPServer
}

// New creates the MCP server and registers its tools.
func New(cfg Config) *Server {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{cfg: cfg, log: cfg.Logger}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}

	s.mcp = server.NewMCPServer(
		"rushhour",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour puzzle solver.

Boards are square grids of characters. '.' is an empty cell, 'X' is the goal
car, any other character is a car. Write a 6x6 board as 36 characters on one
line or as 6 rows separated by whitespace. The goal car leaves through the
right edge (or the bottom edge if it is vertical).

TOOLS:
- solve_puzzle: shortest solution as a list of moves like "A-2" (car A slides 2 cells up/left)
- validate_board: check a board and list its cars
- analyze_board: count reachable states and the optimal solution length`),
	)
	s.registerTools()

	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// ServeStdio serves MCP over stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	board := map[string]interface{}{
		"type":        "string",
		"description": "Board text: one line of n*n cells or n whitespace-separated rows",
	}

	s.mcp.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Find a shortest sequence of moves that frees the goal car X",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": board,
				"heuristic": map[string]interface{}{
					"type":        "string",
					"description": "One of " + strings.Join(heuristic.Names(), ", ") + " (default " + heuristic.Default + ")",
				},
				"max_nodes": map[string]interface{}{
					"type":        "number",
					"description": "Stop after generating this many search nodes (optional)",
				},
				"show": map[string]interface{}{
					"type":        "boolean",
					"description": "Also print the board after every move",
				},
			},
			Required: []string{"board"},
		},
	}, s.handleSolve)

	s.mcp.AddTool(mcp.Tool{
		Name:        "validate_board",
		Description: "Parse a board and list its cars",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"board": board},
			Required:   []string{"board"},
		},
	}, s.handleValidate)

	s.mcp.AddTool(mcp.Tool{
		Name:        "analyze_board",
		Description: "Enumerate every state reachable from a board",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"board": board},
			Required:   []string{"board"},
		},
	}, s.handleAnalyze)
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}

	return context.WithCancel(ctx)
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	text, _ := args["board"].(string)
	name, _ := args["heuristic"].(string)
	maxNodes, _ := args["max_nodes"].(float64)
	show, _ := args["show"].(bool)

	p, err := puzzle.ParseBoard(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if name == "" {
		name = heuristic.Default
	}
	h, err := heuristic.ByName(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if maxNodes < 0 {
		return mcp.NewToolResultError("max_nodes cannot be negative"), nil
	}
	if maxNodes != math.Trunc(maxNodes) || maxNodes > math.MaxInt32 {
		return mcp.NewToolResultError(fmt.Sprintf("max_nodes must be a whole number no larger than %d", math.MaxInt32)), nil
	}
	budget := int(maxNodes)
	if s.cfg.MaxNodes > 0 && (budget == 0 || budget > s.cfg.MaxNodes) {
		budget = s.cfg.MaxNodes
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := astar.Solve(p,
		astar.WithContext(ctx),
		astar.WithHeuristic(h),
		astar.WithMaxNodes(budget),
		astar.WithLogger(s.log),
	)
	if err != nil && res == nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.Info("Tool call.", "tool", "solve_puzzle", "status", res.Status.String(), "nodes", res.NodesExpanded)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Status: %s\n", res.Status)
	if res.Solved() {
		fmt.Fprintf(&sb, "Moves (%d): %s\n", res.Cost, joinMoves(res.Path))
	}
	fmt.Fprintf(&sb, "Nodes generated: %d\nNodes expanded: %d\n", res.NodesExpanded, res.Settled)
	if show && res.Solved() {
		sb.WriteString("\n")
		if err := report.Boards(&sb, p, res.Path); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	text, _ := args["board"].(string)

	p, err := puzzle.ParseBoard(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Valid %dx%d board with %d cars:\n", p.GridSize(), p.GridSize(), p.NumCars())
	for i, c := range p.Cars() {
		role := ""
		if i == 0 {
			role = " (goal)"
		}
		fmt.Fprintf(&sb, "- %c: %s, size %d, at row %d col %d%s\n", c.Name, c.Orientation, c.Size, c.Row, c.Col, role)
	}
	if p.Initial().IsGoal() {
		sb.WriteString("The goal car is already at the exit.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	text, _ := args["board"].(string)

	p, err := puzzle.ParseBoard(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := explore.Explore(p, explore.WithContext(ctx), explore.WithMaxStates(s.cfg.MaxStates))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Reachable states: %d\nGoal states: %d\n", res.Reachable, res.Goals)
	if res.GoalDepth >= 0 {
		moves, _ := res.MovesTo(res.GoalKey)
		fmt.Fprintf(&sb, "Optimal solution: %d moves: %s\n", res.GoalDepth, joinMoves(moves))
	} else {
		sb.WriteString("No goal state is reachable.\n")
	}
	fmt.Fprintf(&sb, "Farthest state: %d moves\n", res.Deepest)
	if res.Truncated {
		sb.WriteString("Stopped early: state limit reached.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func joinMoves(moves []puzzle.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}

	return strings.Join(parts, " ")
}
