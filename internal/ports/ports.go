package ports

import (
	"context"
	"time"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/puzzle"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Solver searches a validated model for a solution and can test
// uniqueness. Implementations must be deterministic for a given model.
type Solver interface {
	Solve(ctx context.Context, m *puzzle.Model) (domain.Grid, Stats, error)
	Unique(ctx context.Context, m *puzzle.Model) (bool, Stats, error)
}

// Generator creates new puzzles at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, seed int64, difficulty domain.Difficulty, v domain.Variant) (*domain.Puzzle, Stats, error)
}

// Validator performs fast duplicate checks across the variant's groups.
type Validator interface {
	Validate(ctx context.Context, g domain.Grid, v domain.Variant) (ok bool, conflicts []domain.Position, err error)
}

// Hinter suggests the next forced move for a partial grid.
type Hinter interface {
	Hint(ctx context.Context, g domain.Grid, v domain.Variant) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
