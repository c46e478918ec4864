// Package usecase exposes the application operations as a single service
// facade over the solver, generator, validator, hinter and storage ports.
package usecase

import (
	"context"
	"errors"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/ports"
	"svw.info/gridsolver/internal/puzzle"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Solve is the core entry point: clues plus a variant in, a complete grid
// out. The model is validated first; on an invalid clue set the solver is
// never invoked and the *puzzle.InvalidPuzzleError reaches the caller.
func (u *Service) Solve(ctx context.Context, clues domain.Clues, v domain.Variant) (domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return domain.Grid{}, ports.Stats{}, errNotConfigured
	}
	m, err := puzzle.New(clues, v)
	if err != nil {
		return domain.Grid{}, ports.Stats{}, err
	}
	return u.Solver.Solve(ctx, m)
}

// Unique reports whether the clue set has exactly one solution.
func (u *Service) Unique(ctx context.Context, clues domain.Clues, v domain.Variant) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	m, err := puzzle.New(clues, v)
	if err != nil {
		return false, ports.Stats{}, err
	}
	return u.Solver.Unique(ctx, m)
}

func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty, v domain.Variant) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, d, v)
}

func (u *Service) Validate(ctx context.Context, g domain.Grid, v domain.Variant) (bool, []domain.Position, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g, v)
}

func (u *Service) Hint(ctx context.Context, g domain.Grid, v domain.Variant) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, g, v)
}

// Persistence
func (u *Service) Save(ctx context.Context, p *domain.Puzzle) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, p)
}

func (u *Service) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
