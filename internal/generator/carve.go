package generator

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/ports"
	"svw.info/gridsolver/internal/puzzle"
)

func targetGivens(d domain.Difficulty) int {
	switch d {
	case domain.Easy:
		return 40
	case domain.Medium:
		return 34
	case domain.Hard:
		return 28
	default:
		return 24 // Expert
	}
}

// Generate builds a full random solution for the variant, then removes
// clues in random order as long as the puzzle keeps a unique solution.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, diff domain.Difficulty, v domain.Variant) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	// An empty model carries the variant's peer lists; the random fill
	// below reuses them so diagonal groups are honored too.
	empty, err := puzzle.New(nil, v)
	if err != nil {
		return nil, ports.Stats{}, err
	}

	var full domain.Grid
	if !fillRandom(ctx, rng, empty, &full, 0) {
		if cause := context.Cause(ctx); cause != nil {
			return nil, ports.Stats{}, cause
		}
		return nil, ports.Stats{}, errors.New("could not fill a complete grid")
	}

	working := full
	order := rng.Perm(81)
	deadline := start.Add(900 * time.Millisecond)
	nodes := 0

	for _, i := range order {
		if time.Now().After(deadline) {
			break
		}
		if countGivens(working) <= targetGivens(diff) {
			break
		}
		p := domain.Position(i)
		old := working.At(p)
		if old == 0 {
			continue
		}
		working.Set(p, 0)
		m, err := puzzle.New(working.Clues(), v)
		if err != nil {
			return nil, ports.Stats{}, err
		}
		unique, st, err := g.Solver.Unique(ctx, m)
		nodes += st.Nodes
		if err != nil || !unique {
			working.Set(p, old)
		}
	}

	p := &domain.Puzzle{
		Seed:       seed,
		Variant:    v,
		Difficulty: diff,
		Givens:     working,
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

func countGivens(g domain.Grid) int {
	n := 0
	for _, d := range g {
		if d != 0 {
			n++
		}
	}
	return n
}

// fillRandom completes the grid cell by cell, trying digits in a random
// order at each step.
func fillRandom(ctx context.Context, rng *rand.Rand, m *puzzle.Model, g *domain.Grid, cell int) bool {
	if ctx.Err() != nil {
		return false
	}
	if cell == 81 {
		return true
	}
	p := domain.Position(cell)
	var digits [9]domain.Digit
	for i := range digits {
		digits[i] = domain.Digit(i + 1)
	}
	rng.Shuffle(9, func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	for _, d := range digits {
		if allowed(m, g, p, d) {
			g.Set(p, d)
			if fillRandom(ctx, rng, m, g, cell+1) {
				return true
			}
			g.Set(p, 0)
		}
	}
	return false
}

// allowed reports whether d conflicts with any peer of p.
func allowed(m *puzzle.Model, g *domain.Grid, p domain.Position, d domain.Digit) bool {
	for _, q := range m.Peers(p) {
		if g.At(q) == d {
			return false
		}
	}
	return true
}
