package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const intro = "............XXA.....A..............."

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	result, err := h(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is text")

	return text.Text, result.IsError
}

func TestNew(t *testing.T) {
	s := New(Config{})
	require.NotNil(t, s.MCPServer())
	assert.Equal(t, "dev", s.cfg.Version)
	assert.NotNil(t, s.log)
}

func TestHandleSolve(t *testing.T) {
	s := New(Config{})

	text, isErr := call(t, s.handleSolve, "solve_puzzle", map[string]interface{}{"board": intro})
	assert.False(t, isErr)
	assert.Contains(t, text, "Status: solved")
	assert.Contains(t, text, "Moves (2): A-2 X+4")
	assert.Contains(t, text, "Nodes generated: 17")

	text, isErr = call(t, s.handleSolve, "solve_puzzle", map[string]interface{}{
		"board":     intro,
		"heuristic": "zero",
		"show":      true,
	})
	assert.False(t, isErr)
	assert.Contains(t, text, "Nodes generated: 19")
	assert.Contains(t, text, "2. X+4\n..A...\n..A...\n....XX")
}

func TestHandleSolve_Budget(t *testing.T) {
	s := New(Config{MaxNodes: 5})

	// the server cap wins over a larger request
	text, isErr := call(t, s.handleSolve, "solve_puzzle", map[string]interface{}{
		"board":     intro,
		"max_nodes": float64(1000),
	})
	assert.False(t, isErr)
	assert.Contains(t, text, "Status: budget-exceeded")
	assert.Contains(t, text, "Nodes generated: 5")
	assert.NotContains(t, text, "Moves")
}

func TestHandleSolve_Errors(t *testing.T) {
	s := New(Config{})

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing board", map[string]interface{}{}, "empty board"},
		{"bad board", map[string]interface{}{"board": "XX."}, "malformed board"},
		{"unknown heuristic", map[string]interface{}{"board": intro, "heuristic": "guess"}, "unknown heuristic"},
		{"negative budget", map[string]interface{}{"board": intro, "max_nodes": float64(-3)}, "negative"},
		{"fractional budget", map[string]interface{}{"board": intro, "max_nodes": 2.5}, "whole number"},
		{"huge budget", map[string]interface{}{"board": intro, "max_nodes": 1e300}, "whole number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, isErr := call(t, s.handleSolve, "solve_puzzle", tc.args)
			assert.True(t, isErr)
			assert.Contains(t, text, tc.want)
		})
	}

	// nil arguments behave like an empty map
	text, isErr := call(t, s.handleSolve, "solve_puzzle", nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "empty board")
}

func TestHandleValidate(t *testing.T) {
	s := New(Config{})

	text, isErr := call(t, s.handleValidate, "validate_board", map[string]interface{}{"board": intro})
	assert.False(t, isErr)
	assert.Contains(t, text, "Valid 6x6 board with 2 cars")
	assert.Contains(t, text, "- X: horizontal, size 2, at row 2 col 0 (goal)")
	assert.Contains(t, text, "- A: vertical, size 2, at row 2 col 2\n")

	text, isErr = call(t, s.handleValidate, "validate_board", map[string]interface{}{"board": "XX.A ..A. .... ...."})
	assert.True(t, isErr)
	assert.Contains(t, text, "not one straight run")

	text, _ = call(t, s.handleValidate, "validate_board", map[string]interface{}{"board": "..XX .... .... ...."})
	assert.Contains(t, text, "already at the exit")
}

func TestHandleAnalyze(t *testing.T) {
	s := New(Config{})

	text, isErr := call(t, s.handleAnalyze, "analyze_board", map[string]interface{}{"board": intro})
	assert.False(t, isErr)
	assert.Contains(t, text, "Reachable states: 21")
	assert.Contains(t, text, "Goal states: 5")
	assert.Contains(t, text, "Optimal solution: 2 moves: A-2 X+4")
	assert.Contains(t, text, "Farthest state: 3 moves")

	text, _ = call(t, s.handleAnalyze, "analyze_board", map[string]interface{}{"board": "XXA ..A ..A"})
	assert.Contains(t, text, "No goal state is reachable")

	capped := New(Config{MaxStates: 3})
	text, _ = call(t, capped.handleAnalyze, "analyze_board", map[string]interface{}{"board": intro})
	assert.Contains(t, text, "Reachable states: 3")
	assert.Contains(t, text, "Stopped early")
}
