package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(4, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Row())
	assert.Equal(t, 7, p.Col())
	assert.Equal(t, Position(4*9+7), p)
	assert.Equal(t, "(r4,c7)", p.String())
}

func TestNewPositionOutOfRange(t *testing.T) {
	cases := [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}, {12, 12}}
	for _, rc := range cases {
		_, err := NewPosition(rc[0], rc[1])
		require.ErrorIs(t, err, ErrOutOfRange, "row=%d col=%d", rc[0], rc[1])
	}
}

func TestMustPositionPanics(t *testing.T) {
	assert.Panics(t, func() { MustPosition(9, 0) })
}

func TestPositionValid(t *testing.T) {
	assert.True(t, Position(0).Valid())
	assert.True(t, Position(80).Valid())
	assert.False(t, Position(81).Valid())
}
