package domain

import (
	"strconv"
	"strings"
)

// Group is an ordered set of 9 distinct positions that must jointly hold
// each digit 1..9 exactly once. Groups are derived from constraint rules
// and never mutated after construction.
type Group struct {
	Name  string
	Cells [9]Position
}

// RowGroup returns the group covering row r (0..8).
func RowGroup(r int) Group {
	g := Group{Name: "row " + itoa(r)}
	for c := 0; c < 9; c++ {
		g.Cells[c] = MustPosition(r, c)
	}
	return g
}

// ColGroup returns the group covering column c (0..8).
func ColGroup(c int) Group {
	g := Group{Name: "col " + itoa(c)}
	for r := 0; r < 9; r++ {
		g.Cells[r] = MustPosition(r, c)
	}
	return g
}

// BoxGroup returns the 3x3 box group containing cell (r, c).
func BoxGroup(r, c int) Group {
	br, bc := (r/3)*3, (c/3)*3
	g := Group{Name: "box " + itoa(br/3) + "," + itoa(bc/3)}
	i := 0
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			g.Cells[i] = MustPosition(br+dr, bc+dc)
			i++
		}
	}
	return g
}

// DiagonalGroup returns the main diagonal (r==c) when main is true,
// otherwise the anti-diagonal (r+c==8).
func DiagonalGroup(main bool) Group {
	g := Group{Name: "anti diagonal"}
	if main {
		g.Name = "main diagonal"
	}
	for c := 0; c < 9; c++ {
		r := 8 - c
		if main {
			r = c
		}
		g.Cells[c] = MustPosition(r, c)
	}
	return g
}

// Contains reports whether p is one of the group's cells.
func (g Group) Contains(p Position) bool {
	for _, q := range g.Cells {
		if q == p {
			return true
		}
	}
	return false
}

func (g Group) String() string {
	var b strings.Builder
	b.WriteString(g.Name)
	b.WriteString(" [")
	for i, p := range g.Cells {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString("]")
	return b.String()
}

func itoa(n int) string { return strconv.Itoa(n) }
