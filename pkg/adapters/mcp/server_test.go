package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
)

const maze = "+++++\n+S  +\n+++ +\n+F  +\n+++++\n"

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewServer(wayfinder.New(wayfinder.WithStore(store)), store), store
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleSolve(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": maze, "strategy": "dfs"})
	require.NoError(t, err)
	require.NotNil(t, resp.Solution)
	assert.Equal(t, domain.StatusFound, resp.Solution.Status)
	assert.Equal(t, domain.DepthFirst, resp.Solution.Strategy)
	assert.Equal(t, "+++++\n+S..+\n+++.+\n+F..+\n+++++\n", resp.Overlay)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{resp.Solution.ID}, ids)
}

func TestHandleSolve_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": maze, "strategy": "astar"})
	assert.Error(t, err)

	_, err = s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": "no start here"})
	assert.Error(t, err)

	_, err = s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": "S \xff F"})
	assert.ErrorIs(t, err, textmaze.ErrInvalidUTF8)

	resp, err := s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": "S+F\n"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExhausted, resp.Solution.Status)
	assert.Empty(t, resp.Overlay)
}

func TestHandleGetSolution(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	solved, err := s.handleSolve(ctx, mcp.CallToolRequest{}, map[string]interface{}{"maze": maze})
	require.NoError(t, err)
	id := solved.Solution.ID

	res, err := s.handleGetSolution(ctx, callRequest("get_solution", map[string]any{"id": id}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	var sol domain.Solution
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &sol))
	assert.Equal(t, solved.Solution.Path, sol.Path)

	res, err = s.handleGetSolution(ctx, callRequest("get_solution", map[string]any{"id": id, "format": "mermaid"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "graph LR")

	res, err = s.handleGetSolution(ctx, callRequest("get_solution", map[string]any{"id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleGetSolution(ctx, callRequest("get_solution", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
