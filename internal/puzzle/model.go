// Package puzzle builds the immutable constraint model a solve runs
// against: the variant's group set, the validated clues, and the
// precomputed peer lists used during propagation.
package puzzle

import (
	"fmt"

	"svw.info/gridsolver/internal/domain"
)

// InvalidPuzzleError reports two clues carrying the same digit inside one
// group. It is raised at construction time, before any search begins.
type InvalidPuzzleError struct {
	Group  domain.Group
	First  domain.Position
	Second domain.Position
	Digit  domain.Digit
}

func (e *InvalidPuzzleError) Error() string {
	return fmt.Sprintf("invalid puzzle: digit %d appears at both %s and %s in %s",
		e.Digit, e.First, e.Second, e.Group.Name)
}

// Model is the read-only puzzle description: groups for the chosen
// variant, the initial clues, and per-cell peers (cells sharing at least
// one group). It is built once per solve and never mutated.
type Model struct {
	variant domain.Variant
	groups  []domain.Group
	clues   domain.Clues
	peers   [81][]domain.Position
}

// New validates the clues against every group of the variant and builds
// the model. A duplicated digit within a group fails with
// *InvalidPuzzleError; a clue outside the board or the 1..9 digit range
// fails with domain.ErrOutOfRange.
func New(clues domain.Clues, v domain.Variant) (*Model, error) {
	for p, d := range clues {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: clue position index %d", domain.ErrOutOfRange, p)
		}
		if d < 1 || d > 9 {
			return nil, fmt.Errorf("%w: clue digit %d at %s", domain.ErrOutOfRange, d, p)
		}
	}

	groups := v.Groups()
	for _, g := range groups {
		var seenAt [10]domain.Position
		var seen [10]bool
		for _, p := range g.Cells {
			d, ok := clues[p]
			if !ok {
				continue
			}
			if seen[d] {
				return nil, &InvalidPuzzleError{Group: g, First: seenAt[d], Second: p, Digit: d}
			}
			seen[d] = true
			seenAt[d] = p
		}
	}

	m := &Model{
		variant: v,
		groups:  groups,
		clues:   make(domain.Clues, len(clues)),
	}
	for p, d := range clues {
		m.clues[p] = d
	}

	// Peer lists drive propagation: for each cell, every other cell that
	// shares at least one group with it, in row-major order.
	var mutual [81][81]bool
	for _, g := range groups {
		for _, p := range g.Cells {
			for _, q := range g.Cells {
				if p != q {
					mutual[p][q] = true
				}
			}
		}
	}
	for i := 0; i < 81; i++ {
		for j := 0; j < 81; j++ {
			if mutual[i][j] {
				m.peers[i] = append(m.peers[i], domain.Position(j))
			}
		}
	}
	return m, nil
}

func (m *Model) Variant() domain.Variant { return m.variant }

// Groups returns the variant's group set. Callers must not modify it.
func (m *Model) Groups() []domain.Group { return m.groups }

// Peers returns the cells sharing at least one group with p, ascending.
// Callers must not modify the returned slice.
func (m *Model) Peers(p domain.Position) []domain.Position { return m.peers[p] }

// Clues returns a copy of the initial clue set.
func (m *Model) Clues() domain.Clues {
	out := make(domain.Clues, len(m.clues))
	for p, d := range m.clues {
		out[p] = d
	}
	return out
}

// Clue reports the clue at p, if any.
func (m *Model) Clue(p domain.Position) (domain.Digit, bool) {
	d, ok := m.clues[p]
	return d, ok
}
