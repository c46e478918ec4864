package domain

import (
	"fmt"
	"strings"
)

// Clues maps pre-filled cells to their digits. Unspecified cells are absent.
type Clues map[Position]Digit

// Grid is a full or partial 81-cell assignment in row-major order.
// Zero marks an empty cell.
type Grid [81]Digit

func (g Grid) At(p Position) Digit { return g[p] }

func (g *Grid) Set(p Position, d Digit) { g[p] = d }

// Clues extracts the filled cells of the grid.
func (g Grid) Clues() Clues {
	out := make(Clues)
	for i, d := range g {
		if d != 0 {
			out[Position(i)] = d
		}
	}
	return out
}

// Complete reports whether every cell is filled.
func (g Grid) Complete() bool {
	for _, d := range g {
		if d == 0 {
			return false
		}
	}
	return true
}

// GridFromClues lays the clue map out as a grid.
func GridFromClues(clues Clues) (Grid, error) {
	var g Grid
	for p, d := range clues {
		if !p.Valid() {
			return Grid{}, fmt.Errorf("%w: position index %d", ErrOutOfRange, p)
		}
		if d < 1 || d > 9 {
			return Grid{}, fmt.Errorf("%w: digit %d at %s", ErrOutOfRange, d, p)
		}
		g[p] = d
	}
	return g, nil
}

// ParseGrid reads the common 81-character puzzle form: digits 1..9 for
// clues, '0' or '.' for empty cells. Whitespace is ignored.
func ParseGrid(s string) (Grid, error) {
	var g Grid
	i := 0
	for _, r := range s {
		switch {
		case r == ' ' || r == '\n' || r == '\t' || r == '\r':
			continue
		case r == '0' || r == '.':
			// empty cell
		case r >= '1' && r <= '9':
			if i < 81 {
				g[i] = Digit(r - '0')
			}
		default:
			return Grid{}, fmt.Errorf("invalid grid character %q at cell %d", r, i)
		}
		i++
	}
	if i != 81 {
		return Grid{}, fmt.Errorf("grid has %d cells, want 81", i)
	}
	return g, nil
}

// String renders the grid in the same 81-character form ParseGrid reads.
func (g Grid) String() string {
	var b strings.Builder
	b.Grow(81)
	for _, d := range g {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}

// MarshalText lets grids travel as 81-character strings in JSON.
func (g Grid) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *Grid) UnmarshalText(b []byte) error {
	parsed, err := ParseGrid(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
