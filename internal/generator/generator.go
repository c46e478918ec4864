package generator

import "svw.info/gridsolver/internal/ports"

// UniqueGenerator creates puzzles with a unique solution, using the
// provided solver for uniqueness checks while carving clues away.
type UniqueGenerator struct {
	Solver ports.Solver
}

func NewUniqueGenerator(s ports.Solver) *UniqueGenerator {
	return &UniqueGenerator{Solver: s}
}
