package domain

import "strings"

// Difficulty labels target puzzle generation.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	}
	return "medium"
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(b []byte) error {
	*d = ParseDifficulty(string(b))
	return nil
}

// ParseDifficulty maps a name to a Difficulty, defaulting to Medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy
	case "hard":
		return Hard
	case "expert":
		return Expert
	}
	return Medium
}

// Puzzle is a persisted grid puzzle with metadata.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Variant    Variant    `json:"variant"`
	Difficulty Difficulty `json:"difficulty"`
	Givens     Grid       `json:"givens"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Variant    Variant    `json:"variant"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}

// Hint describes a forced-move suggestion for a partial grid.
type Hint struct {
	Message  string   `json:"message,omitempty"`
	Position Position `json:"-"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Digit    Digit    `json:"digit"`
}
