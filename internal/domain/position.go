package domain

import (
	"errors"
	"fmt"
)

// Digit is a cell value in 1..9. Zero marks an empty cell in grid form.
type Digit uint8

// ErrOutOfRange reports a coordinate or digit outside the 9x9 board.
var ErrOutOfRange = errors.New("out of range")

// Position identifies a cell as a flat row-major index (row*9 + col).
// The index form keeps candidate stores and trails as plain arrays.
type Position uint8

// NewPosition builds a Position from row/col coordinates in 0..8.
func NewPosition(row, col int) (Position, error) {
	if row < 0 || row > 8 || col < 0 || col > 8 {
		return 0, fmt.Errorf("%w: row=%d col=%d", ErrOutOfRange, row, col)
	}
	return Position(row*9 + col), nil
}

// MustPosition is NewPosition for coordinates known to be valid.
func MustPosition(row, col int) Position {
	p, err := NewPosition(row, col)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether p indexes a cell on the board. Positions built
// through NewPosition are always valid; this guards raw conversions.
func (p Position) Valid() bool { return p < 81 }

func (p Position) Row() int { return int(p) / 9 }
func (p Position) Col() int { return int(p) % 9 }

func (p Position) String() string {
	return fmt.Sprintf("(r%d,c%d)", p.Row(), p.Col())
}
