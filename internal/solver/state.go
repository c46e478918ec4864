package solver

import (
	"errors"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/puzzle"
)

// errContradiction signals a cell whose candidate set became empty, or an
// assignment of an already-eliminated digit. It never escapes the solver:
// every occurrence is answered by a rollback (or, at the root, by
// ErrUnsatisfiable).
var errContradiction = errors.New("contradiction")

// undo records one domain change so rollback can restore it exactly.
type undo struct {
	pos   domain.Position
	prior DigitSet
}

// state is the mutable heart of search: per-cell candidate sets plus the
// trail of changes since the last checkpoint. One state is owned by
// exactly one in-progress solve.
type state struct {
	model *puzzle.Model
	cells [81]DigitSet
	trail []undo
}

func newState(m *puzzle.Model) *state {
	s := &state{model: m, trail: make([]undo, 0, 256)}
	for i := range s.cells {
		s.cells[i] = FullDigitSet()
	}
	return s
}

// checkpoint marks the current trail length for a later rollback.
func (s *state) checkpoint() int { return len(s.trail) }

// rollback undoes every change recorded since mark, restoring all domains
// exactly as they were.
func (s *state) rollback(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		e := s.trail[i]
		s.cells[e.pos] = e.prior
	}
	s.trail = s.trail[:mark]
}

// set updates a cell's candidate set, logging the prior value.
func (s *state) set(p domain.Position, ds DigitSet) {
	s.trail = append(s.trail, undo{pos: p, prior: s.cells[p]})
	s.cells[p] = ds
}

// assign fixes digit d at position p and propagates to fixpoint: d is
// eliminated from every peer, and any peer collapsing to a single
// candidate is assigned in turn (naked singles) until nothing is forced.
// Returns errContradiction if d was not a candidate at p or a peer's
// candidate set becomes empty; the caller must then roll back.
func (s *state) assign(p domain.Position, d domain.Digit) error {
	type forced struct {
		pos domain.Position
		d   domain.Digit
	}
	queue := []forced{{p, d}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		cur := s.cells[f.pos]
		if !cur.Has(f.d) {
			return errContradiction
		}
		if cur != SingleDigit(f.d) {
			s.set(f.pos, SingleDigit(f.d))
		}
		for _, q := range s.model.Peers(f.pos) {
			dom := s.cells[q]
			if !dom.Has(f.d) {
				continue
			}
			next := dom.Remove(f.d)
			s.set(q, next)
			if next == 0 {
				return errContradiction
			}
			if single, ok := next.Single(); ok {
				queue = append(queue, forced{q, single})
			}
		}
	}
	return nil
}

// solved reports whether every cell has exactly one candidate.
func (s *state) solved() bool {
	for _, ds := range s.cells {
		if ds.Count() != 1 {
			return false
		}
	}
	return true
}

// grid materializes the current singleton domains as a grid. Cells still
// holding several candidates come out empty.
func (s *state) grid() domain.Grid {
	var g domain.Grid
	for i, ds := range s.cells {
		if d, ok := ds.Single(); ok {
			g[i] = d
		}
	}
	return g
}

// selectCell picks the unassigned cell with the fewest candidates (MRV),
// ties broken by row-major order. Reports false when all cells are fixed.
func (s *state) selectCell() (domain.Position, bool) {
	best := -1
	bestCount := 10
	for i, ds := range s.cells {
		if n := ds.Count(); n > 1 && n < bestCount {
			best, bestCount = i, n
			if n == 2 {
				break
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return domain.Position(best), true
}
