package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/internal/presentation/render"
	"github.com/aretw0/wayfinder/pkg/adapters/textmaze"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// MaxMazeBytes bounds the body of a solve request.
const MaxMazeBytes = 1 << 20

// Explorer is the part of wayfinder.Explorer the server needs.
type Explorer interface {
	SolveText(ctx context.Context, text string, opts ...wayfinder.Option) (*domain.Solution, error)
}

// Server exposes solving and stored solutions over HTTP.
type Server struct {
	Explorer Explorer
	Store    ports.SolutionStore // optional; solution routes answer 404 without it
	Metrics  http.Handler        // optional; served on /metrics
	Logger   *slog.Logger
}

// NewHandler builds the router.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Post("/solve", s.Solve)
	r.Route("/solutions", func(r chi.Router) {
		r.Get("/", s.ListSolutions)
		r.Get("/{id}", s.GetSolution)
		r.Delete("/{id}", s.DeleteSolution)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Solve handles POST /solve. The body is a text maze; ?strategy= picks bfs
// (default) or dfs and ?format= picks json (default), text or mermaid.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	strategy, err := domain.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if format := r.URL.Query().Get("format"); !validFormat(format) {
		http.Error(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxMazeBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, fmt.Sprintf("Read error: %v", err), http.StatusBadRequest)
		}
		s.Logger.Warn("Solve: request body rejected", "err", err)
		return
	}

	text, err := textmaze.Sanitize(string(body), MaxMazeBytes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Solve: input rejected", "err", err, "size", len(body))
		return
	}

	sol, err := s.Explorer.SolveText(r.Context(), text, wayfinder.WithStrategy(strategy))
	switch {
	case errors.Is(err, textmaze.ErrInvalidMaze):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil && sol == nil:
		http.Error(w, fmt.Sprintf("Solve error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Solve failed", "err", err)
		return
	case err != nil:
		// Solved but not persisted; the caller still gets the answer.
		s.Logger.Error("Solve: store failed", "err", err, "solution", sol.ID)
	}

	s.Logger.Info("Solved maze", "solution", sol.ID, "status", sol.Status, "strategy", strategy, "path", len(sol.Path))
	s.write(w, r, http.StatusCreated, sol)
}

// ListSolutions handles GET /solutions.
func (s *Server) ListSolutions(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "No solution store configured", http.StatusNotFound)
		return
	}
	ids, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("List solutions failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetSolution handles GET /solutions/{id}. ?format= as for Solve.
func (s *Server) GetSolution(w http.ResponseWriter, r *http.Request) {
	sol, ok := s.load(w, r)
	if !ok {
		return
	}
	s.write(w, r, http.StatusOK, sol)
}

// DeleteSolution handles DELETE /solutions/{id}.
func (s *Server) DeleteSolution(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "No solution store configured", http.StatusNotFound)
		return
	}
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Delete solution failed", "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*domain.Solution, bool) {
	if s.Store == nil {
		http.Error(w, "No solution store configured", http.StatusNotFound)
		return nil, false
	}
	id := chi.URLParam(r, "id")
	sol, err := s.Store.Load(r.Context(), id)
	if errors.Is(err, domain.ErrSolutionNotFound) {
		http.Error(w, fmt.Sprintf("Solution %s not found", id), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("Load solution failed", "err", err, "solution", id)
		return nil, false
	}
	return sol, true
}

func validFormat(format string) bool {
	switch format {
	case "", "json", "text", "mermaid":
		return true
	}
	return false
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, sol *domain.Solution) {
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, status, sol)
	case "text":
		if sol.Maze == "" {
			http.Error(w, "Solution has no maze drawing", http.StatusUnprocessableEntity)
			return
		}
		out, err := render.Overlay(sol.Maze, sol)
		if err != nil {
			http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out)
	case "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, graph.GenerateMermaid(sol, &graph.Overlay{Path: true}))
	default:
		http.Error(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}
