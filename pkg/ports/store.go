package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// SolutionStore defines the interface for persisting solutions.
type SolutionStore interface {
	// Save persists the solution under its ID.
	Save(ctx context.Context, solution *domain.Solution) error

	// Load retrieves a solution by ID.
	// Returns domain.ErrSolutionNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Solution, error)

	// Delete removes a solution. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored solutions.
	List(ctx context.Context) ([]string, error)
}
