// Package solver implements backtracking search over candidate sets with
// group-uniqueness propagation. Search state lives in flat arrays and a
// trail, so a checkpoint is a trail length and a rollback is a replay of
// the trail in reverse.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/ports"
	"svw.info/gridsolver/internal/puzzle"
)

var (
	// ErrUnsatisfiable means the search space was exhausted with no
	// solution. This is a definite answer, never a budget artifact.
	ErrUnsatisfiable = errors.New("no solution exists")

	// ErrIncomplete means a node budget or deadline ran out before the
	// search could decide either way.
	ErrIncomplete = errors.New("search incomplete")
)

// ConstraintSolver is a propagate-and-branch solver: assignments are
// propagated to fixpoint (peer elimination plus naked singles), branch
// cells are chosen by fewest remaining candidates, and candidates are
// tried in ascending order so results are deterministic.
type ConstraintSolver struct {
	// MaxNodes bounds the number of branch attempts; zero means no bound.
	// The check happens at branch points only and never mutates state.
	MaxNodes int
}

func NewConstraintSolver() *ConstraintSolver { return &ConstraintSolver{} }

// Solve finds the deterministic first solution of the model. It returns
// ErrUnsatisfiable when none exists and ErrIncomplete when the budget or
// the context deadline ran out first.
func (cs *ConstraintSolver) Solve(ctx context.Context, m *puzzle.Model) (domain.Grid, ports.Stats, error) {
	start := time.Now()
	var stats ports.Stats

	st := newState(m)
	if err := propagateClues(st, m); err != nil {
		// A contradiction while laying down clues means no branching can
		// help: the puzzle is unsatisfiable outright.
		stats.Duration = time.Since(start)
		return domain.Grid{}, stats, ErrUnsatisfiable
	}

	grids, err := cs.search(ctx, st, &stats, 1)
	stats.Duration = time.Since(start)
	if err != nil {
		return domain.Grid{}, stats, err
	}
	if len(grids) == 0 {
		return domain.Grid{}, stats, ErrUnsatisfiable
	}
	return grids[0], stats, nil
}

// Unique reports whether the model has exactly one solution. The search
// stops as soon as a second solution is found.
func (cs *ConstraintSolver) Unique(ctx context.Context, m *puzzle.Model) (bool, ports.Stats, error) {
	start := time.Now()
	var stats ports.Stats

	st := newState(m)
	if err := propagateClues(st, m); err != nil {
		stats.Duration = time.Since(start)
		return false, stats, nil
	}

	grids, err := cs.search(ctx, st, &stats, 2)
	stats.Duration = time.Since(start)
	if err != nil {
		return false, stats, err
	}
	return len(grids) == 1, stats, nil
}

// propagateClues assigns every clue in row-major order and propagates
// each to fixpoint.
func propagateClues(st *state, m *puzzle.Model) error {
	for i := 0; i < 81; i++ {
		p := domain.Position(i)
		if d, ok := m.Clue(p); ok {
			if err := st.assign(p, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// frame is one branch point: the chosen cell, the candidates not yet
// tried, and the trail mark to roll back to between attempts.
type frame struct {
	pos       domain.Position
	remaining DigitSet
	mark      int
}

// search runs the branch/rollback loop until limit solutions are found,
// the frame stack is exhausted, or the budget runs out. The explicit
// stack bounds depth at 81 frames and keeps backtracking a plain trail
// restore.
func (cs *ConstraintSolver) search(ctx context.Context, st *state, stats *ports.Stats, limit int) ([]domain.Grid, error) {
	var (
		found []domain.Grid
		stack []frame
	)
	for {
		if st.solved() {
			found = append(found, st.grid())
			if len(found) >= limit {
				return found, nil
			}
		} else if p, ok := st.selectCell(); ok {
			stack = append(stack, frame{pos: p, remaining: st.cells[p], mark: st.checkpoint()})
		}

		// Take the next candidate from the deepest frame that still has
		// one, discarding exhausted frames as we go.
		progressed := false
		for len(stack) > 0 && !progressed {
			if err := cs.checkBudget(ctx, stats); err != nil {
				return found, err
			}
			top := &stack[len(stack)-1]
			d, ok := top.remaining.PopLowest()
			if !ok {
				st.rollback(top.mark)
				stack = stack[:len(stack)-1]
				continue
			}
			st.rollback(top.mark)
			stats.Nodes++
			if err := st.assign(top.pos, d); err == nil {
				progressed = true
			}
		}
		if !progressed {
			return found, nil
		}
	}
}

func (cs *ConstraintSolver) checkBudget(ctx context.Context, stats *ports.Stats) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrIncomplete, context.Cause(ctx))
	default:
	}
	if cs.MaxNodes > 0 && stats.Nodes >= cs.MaxNodes {
		return fmt.Errorf("%w: node budget %d exhausted", ErrIncomplete, cs.MaxNodes)
	}
	return nil
}
