package domain

import (
	"fmt"
	"strings"
)

// Constraint is a closed set of group-producing rules. Row, column and box
// apply to every cell; the diagonal rule only applies to cells that lie on
// the main or anti diagonal.
type Constraint int

const (
	ConstraintRow Constraint = iota
	ConstraintColumn
	ConstraintBox
	ConstraintDiagonal
)

// GroupsFor returns the group(s) this rule imposes on p. Row, column and
// box always yield exactly one group; diagonal yields zero, one, or (for
// the center cell) two.
func (c Constraint) GroupsFor(p Position) []Group {
	switch c {
	case ConstraintRow:
		return []Group{RowGroup(p.Row())}
	case ConstraintColumn:
		return []Group{ColGroup(p.Col())}
	case ConstraintBox:
		return []Group{BoxGroup(p.Row(), p.Col())}
	case ConstraintDiagonal:
		var gs []Group
		if p.Row() == p.Col() {
			gs = append(gs, DiagonalGroup(true))
		}
		if p.Row()+p.Col() == 8 {
			gs = append(gs, DiagonalGroup(false))
		}
		return gs
	}
	return nil
}

// Variant selects which constraint rules are in play.
type Variant int

const (
	Standard Variant = iota
	Diagonal
)

// Constraints returns the rule set for the variant.
func (v Variant) Constraints() []Constraint {
	cs := []Constraint{ConstraintRow, ConstraintColumn, ConstraintBox}
	if v == Diagonal {
		cs = append(cs, ConstraintDiagonal)
	}
	return cs
}

// Groups returns the full deduplicated group set for the variant: the
// union of every rule's groups over every cell. Standard yields 27
// groups, Diagonal 29. Order is deterministic (first appearance in
// row-major cell order).
func (v Variant) Groups() []Group {
	var out []Group
	seen := make(map[[9]Position]struct{})
	for _, c := range v.Constraints() {
		for i := 0; i < 81; i++ {
			for _, g := range c.GroupsFor(Position(i)) {
				if _, ok := seen[g.Cells]; ok {
					continue
				}
				seen[g.Cells] = struct{}{}
				out = append(out, g)
			}
		}
	}
	return out
}

func (v Variant) String() string {
	if v == Diagonal {
		return "diagonal"
	}
	return "standard"
}

// MarshalText encodes the variant as its name for JSON payloads.
func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant maps a name to a Variant; empty input means Standard.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, nil
	case "diagonal", "x":
		return Diagonal, nil
	}
	return Standard, fmt.Errorf("unknown variant %q", s)
}
