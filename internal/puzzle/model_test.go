package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/gridsolver/internal/domain"
)

func pos(r, c int) domain.Position { return domain.MustPosition(r, c) }

func TestNewValid(t *testing.T) {
	clues := domain.Clues{pos(0, 0): 5, pos(0, 1): 3, pos(1, 0): 6}
	m, err := New(clues, domain.Standard)
	require.NoError(t, err)
	assert.Equal(t, domain.Standard, m.Variant())
	assert.Len(t, m.Groups(), 27)
	assert.Equal(t, clues, m.Clues())

	d, ok := m.Clue(pos(0, 0))
	assert.True(t, ok)
	assert.Equal(t, domain.Digit(5), d)
	_, ok = m.Clue(pos(8, 8))
	assert.False(t, ok)
}

func TestNewDuplicateClues(t *testing.T) {
	cases := []struct {
		name  string
		clues domain.Clues
		group string
	}{
		{"row", domain.Clues{pos(2, 1): 4, pos(2, 7): 4}, "row 2"},
		{"col", domain.Clues{pos(0, 5): 9, pos(8, 5): 9}, "col 5"},
		{"box", domain.Clues{pos(3, 3): 1, pos(5, 5): 1}, "box 1,1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.clues, domain.Standard)
			var invalid *InvalidPuzzleError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.group, invalid.Group.Name)
			assert.NotEqual(t, invalid.First, invalid.Second)
		})
	}
}

func TestNewDiagonalDuplicateOnlyUnderDiagonalVariant(t *testing.T) {
	// same digit twice on the main diagonal, in different rows, columns
	// and boxes
	clues := domain.Clues{pos(0, 0): 5, pos(4, 4): 5}

	_, err := New(clues, domain.Standard)
	require.NoError(t, err, "standard variant has no diagonal groups")

	_, err = New(clues, domain.Diagonal)
	var invalid *InvalidPuzzleError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "main diagonal", invalid.Group.Name)
	assert.Equal(t, domain.Digit(5), invalid.Digit)
}

func TestNewClueOutOfRange(t *testing.T) {
	_, err := New(domain.Clues{domain.Position(81): 1}, domain.Standard)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = New(domain.Clues{pos(0, 0): 10}, domain.Standard)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = New(domain.Clues{pos(0, 0): 0}, domain.Standard)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestPeers(t *testing.T) {
	m, err := New(nil, domain.Standard)
	require.NoError(t, err)

	// 8 row + 8 col + 4 box cells not already counted
	peers := m.Peers(pos(4, 4))
	assert.Len(t, peers, 20)
	for _, q := range peers {
		assert.NotEqual(t, pos(4, 4), q)
	}

	// ascending row-major order
	for i := 1; i < len(peers); i++ {
		assert.Less(t, peers[i-1], peers[i])
	}
}

func TestPeersDiagonalVariant(t *testing.T) {
	m, err := New(nil, domain.Diagonal)
	require.NoError(t, err)

	// center cell sits on both diagonals: 20 standard peers plus 6 new
	// cells from each diagonal
	assert.Len(t, m.Peers(pos(4, 4)), 32)

	// a cell off both diagonals is unaffected
	assert.Len(t, m.Peers(pos(1, 3)), 20)
}

func TestCluesCopyIsDetached(t *testing.T) {
	m, err := New(domain.Clues{pos(0, 0): 1}, domain.Standard)
	require.NoError(t, err)
	c := m.Clues()
	c[pos(0, 1)] = 2
	_, ok := m.Clue(pos(0, 1))
	assert.False(t, ok, "mutating the copy must not touch the model")
}
