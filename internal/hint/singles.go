package hint

import (
	"context"
	"fmt"

	"svw.info/gridsolver/internal/domain"
	"svw.info/gridsolver/internal/puzzle"
)

// Singles suggests naked singles: empty cells whose peers already rule
// out every digit but one.
type Singles struct{}

func NewSingles() *Singles { return &Singles{} }

// Hint returns the first naked single in row-major order.
func (h *Singles) Hint(ctx context.Context, g domain.Grid, v domain.Variant) (domain.Hint, bool, error) {
	m, err := puzzle.New(g.Clues(), v)
	if err != nil {
		return domain.Hint{}, false, err
	}
	for i := 0; i < 81; i++ {
		p := domain.Position(i)
		if g.At(p) != 0 {
			continue
		}
		if d, ok := soleCandidate(m, g, p); ok {
			return domain.Hint{
				Message:  fmt.Sprintf("only %d fits at %s", d, p),
				Position: p,
				Row:      p.Row(),
				Col:      p.Col(),
				Digit:    d,
			}, true, nil
		}
	}
	return domain.Hint{}, false, nil
}

func soleCandidate(m *puzzle.Model, g domain.Grid, p domain.Position) (domain.Digit, bool) {
	var seen [10]bool
	for _, q := range m.Peers(p) {
		seen[g.At(q)] = true
	}
	var last domain.Digit
	count := 0
	for d := domain.Digit(1); d <= 9; d++ {
		if !seen[d] {
			count++
			last = d
			if count > 1 {
				return 0, false
			}
		}
	}
	return last, count == 1
}
