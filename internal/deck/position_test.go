package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	pos, err := ParsePosition("B7")
	require.NoError(t, err)
	assert.Equal(t, Position{Letter: 'B', Number: 7}, pos)

	pos, err = ParsePosition(" i12 ")
	require.NoError(t, err)
	assert.Equal(t, Position{Letter: 'I', Number: 12}, pos)

	for _, bad := range []string{"", "B", "J1", "A0", "A13", "77", "Bx"} {
		_, err := ParsePosition(bad)
		assert.Error(t, err, "parsing %q", bad)
	}
}

func TestPositionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A1", NewPosition('A', 1).String())
	assert.Equal(t, "I12", NewPosition('I', 12).String())
}

func TestNeighbours(t *testing.T) {
	t.Parallel()

	// A corner has two neighbours, an edge three, the interior four.
	assert.ElementsMatch(t, []Position{
		NewPosition('B', 1), NewPosition('A', 2),
	}, NewPosition('A', 1).Neighbours())

	assert.ElementsMatch(t, []Position{
		NewPosition('A', 4), NewPosition('A', 6), NewPosition('B', 5),
	}, NewPosition('A', 5).Neighbours())

	assert.ElementsMatch(t, []Position{
		NewPosition('D', 5), NewPosition('F', 5),
		NewPosition('E', 4), NewPosition('E', 6),
	}, NewPosition('E', 5).Neighbours())
}

func TestPositionOrdering(t *testing.T) {
	t.Parallel()

	assert.True(t, NewPosition('A', 12).Less(NewPosition('B', 1)))
	assert.True(t, NewPosition('B', 3).Less(NewPosition('B', 4)))
	assert.False(t, NewPosition('B', 4).Less(NewPosition('B', 4)))
}

func TestAllPositions(t *testing.T) {
	t.Parallel()

	all := AllPositions()
	require.Len(t, all, Rows*Columns)
	assert.Equal(t, NewPosition('A', 1), all[0])
	assert.Equal(t, NewPosition('I', 12), all[len(all)-1])

	seen := make(map[Position]bool, len(all))
	for _, pos := range all {
		assert.True(t, pos.Valid())
		assert.False(t, seen[pos], "duplicate %s", pos)
		seen[pos] = true
	}
}
