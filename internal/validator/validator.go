package validator

import (
	"context"

	"svw.info/gridsolver/internal/domain"
)

// FastValidator scans each group of the variant with a digit bitmask and
// reports cells that repeat an earlier digit within the same group.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

func (v *FastValidator) Validate(ctx context.Context, g domain.Grid, variant domain.Variant) (bool, []domain.Position, error) {
	conflictSet := make(map[domain.Position]struct{})
	for _, group := range variant.Groups() {
		m := 0
		for _, p := range group.Cells {
			d := g.At(p)
			if d == 0 {
				continue
			}
			bit := 1 << d
			if m&bit != 0 {
				conflictSet[p] = struct{}{}
			}
			m |= bit
		}
	}
	if len(conflictSet) == 0 {
		return true, nil, nil
	}
	// row-major order keeps output stable
	conflicts := make([]domain.Position, 0, len(conflictSet))
	for i := 0; i < 81; i++ {
		if _, ok := conflictSet[domain.Position(i)]; ok {
			conflicts = append(conflicts, domain.Position(i))
		}
	}
	return false, conflicts, nil
}
