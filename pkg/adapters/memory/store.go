package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Store implements ports.SolutionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Solution
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Solution),
	}
}

// Save keeps a copy of the solution.
func (s *Store) Save(ctx context.Context, sol *domain.Solution) error {
	if sol.ID == "" {
		return fmt.Errorf("solution ID cannot be empty")
	}

	// Copy so later changes by the caller do not leak in.
	copied := sol.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sol.ID] = copied
	return nil
}

// Load returns a copy of the stored solution.
func (s *Store) Load(ctx context.Context, id string) (*domain.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sol, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSolutionNotFound
	}
	return sol.Clone(), nil
}

// Delete removes the solution. Missing ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
