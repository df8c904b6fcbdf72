package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/aretw0/wayfinder/pkg/domain"
)

const lockName = ".lock"

// Store implements ports.SolutionStore using the local filesystem.
// Each solution is a JSON file in BasePath. Writers from several processes are
// serialized with an advisory lock file in the same directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".wayfinder/solutions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".wayfinder", "solutions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("solution ID cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid solution ID %q", id)
	}
	return filepath.Join(s.BasePath, id+".json"), nil
}

func (s *Store) lock(shared bool) (*flock.Flock, error) {
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure solution directory: %w", err)
	}
	fl := flock.New(filepath.Join(s.BasePath, lockName))
	var err error
	if shared {
		err = fl.RLock()
	} else {
		err = fl.Lock()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock solution directory: %w", err)
	}
	return fl, nil
}

// Save writes the solution atomically: a temp file in the same directory is
// written, synced and renamed over the destination.
func (s *Store) Save(ctx context.Context, sol *domain.Solution) error {
	destPath, err := s.path(sol.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal solution: %w", err)
	}

	fl, err := s.lock(false)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sol.ID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // gone after a successful rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows os.Rename fails if the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing solution file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads a solution file.
func (s *Store) Load(ctx context.Context, id string) (*domain.Solution, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}

	fl, err := s.lock(true)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSolutionNotFound
		}
		return nil, fmt.Errorf("failed to read solution file: %w", err)
	}

	var sol domain.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		return nil, fmt.Errorf("failed to unmarshal solution: %w", err)
	}
	return &sol, nil
}

// Delete removes the solution file. Missing ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}

	fl, err := s.lock(false)
	if err != nil {
		return err
	}
	defer func() { _ = fl.Unlock() }()

	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete solution file: %w", err)
	}
	return nil
}

// List returns the ids of all stored solutions in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
