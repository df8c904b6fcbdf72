package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/internal/presentation/render"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

const solutionsURI = "wayfinder://solutions"

// SolveResponse is the structured result of the solve_maze tool.
type SolveResponse struct {
	Solution *domain.Solution `json:"solution" jsonschema_description:"The solve outcome, path and statistics"`
	Overlay  string           `json:"overlay,omitempty" jsonschema_description:"The maze with the path drawn on it, when found"`
}

// Explorer defines what the MCP server needs from wayfinder.
type Explorer interface {
	SolveText(ctx context.Context, text string, opts ...wayfinder.Option) (*domain.Solution, error)
}

// Server exposes maze solving as MCP tools.
type Server struct {
	explorer  Explorer
	store     ports.SolutionStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. store may be nil, in which
// case get_solution and the solutions resource are not registered.
func NewServer(explorer Explorer, store ports.SolutionStore) *Server {
	s := &Server{
		explorer:  explorer,
		store:     store,
		mcpServer: server.NewMCPServer("wayfinder-mcp", strings.TrimSpace(wayfinder.Version)),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: solve_maze
	solveTool := mcp.NewTool("solve_maze",
		mcp.WithDescription("Explore a text maze from its S mark until the F mark is found. Walls are '+', open cells are spaces."),
		mcp.WithString("maze", mcp.Required(), mcp.Description("The maze drawing, rows separated by newlines")),
		mcp.WithString("strategy", mcp.Description("bfs (shortest path, default) or dfs")),
		mcp.WithOutputSchema[SolveResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))

	if s.store == nil {
		return
	}

	// TOOL: get_solution
	s.mcpServer.AddTool(mcp.NewTool("get_solution",
		mcp.WithDescription("Fetch a stored solution by id, as JSON or as a mermaid diagram of its discovery tree."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Solution id returned by solve_maze")),
		mcp.WithString("format", mcp.Description("json (default) or mermaid")),
	), s.handleGetSolution)
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SolveResponse, error) {
	text, _ := args["maze"].(string)
	name, _ := args["strategy"].(string)

	strategy, err := domain.ParseStrategy(name)
	if err != nil {
		return SolveResponse{}, err
	}

	clean, err := textmaze.Sanitize(text, 0)
	if err != nil {
		slog.Warn("MCP Solve: input rejected", "err", err, "size", len(text))
		return SolveResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	sol, err := s.explorer.SolveText(ctx, clean, wayfinder.WithStrategy(strategy))
	if err != nil && sol == nil {
		return SolveResponse{}, fmt.Errorf("solve failed: %w", err)
	}
	if err != nil {
		slog.Error("MCP Solve: store failed", "err", err, "solution", sol.ID)
	}

	resp := SolveResponse{Solution: sol}
	if sol.Found() && sol.Maze != "" {
		if resp.Overlay, err = render.Overlay(sol.Maze, sol); err != nil {
			slog.Error("MCP Solve: overlay failed", "err", err)
		}
	}
	return resp, nil
}

func (s *Server) handleGetSolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sol, err := s.store.Load(ctx, id)
	if errors.Is(err, domain.ErrSolutionNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("solution %s not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}

	switch format := request.GetString("format", "json"); format {
	case "json":
		jsonBytes, _ := json.Marshal(sol)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(sol, &graph.Overlay{Path: true})), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

func (s *Server) registerResources() {
	// EXPOSE: wayfinder://solutions
	s.mcpServer.AddResource(mcp.NewResource(solutionsURI, "Stored Solution IDs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list solutions: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      solutionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
