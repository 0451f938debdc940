package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSingleHotel(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())

	placement := AnalyzePosition(pos(t, "B2"), board, chains)
	assert.Equal(t, PlaceSingle, placement.Kind)
}

func TestAnalyzeNewChain(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	require.NoError(t, board.Place(pos(t, "D4")))

	placement := AnalyzePosition(pos(t, "D5"), board, chains)
	assert.Equal(t, PlaceNewChain, placement.Kind)
	assert.ElementsMatch(t, positions(t, "D4", "D5"), placement.Members)
}

func TestAnalyzeExtendsChain(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)
	found(t, chains, board, bank, Airport, founder, "H3", "H4")

	placement := AnalyzePosition(pos(t, "H5"), board, chains)
	require.Equal(t, PlaceExtendsChain, placement.Kind)
	assert.Equal(t, Airport, placement.Chain)
	assert.ElementsMatch(t, positions(t, "H5"), placement.Members)
}

func TestAnalyzeExtendPullsInLooseNeighbours(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)
	found(t, chains, board, bank, Airport, founder, "H3", "H4")
	require.NoError(t, board.Place(pos(t, "G5")))

	placement := AnalyzePosition(pos(t, "H5"), board, chains)
	require.Equal(t, PlaceExtendsChain, placement.Kind)
	assert.Equal(t, Airport, placement.Chain)
	assert.ElementsMatch(t, positions(t, "G5", "H5"), placement.Members)
}

func TestAnalyzeFusion(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)
	found(t, chains, board, bank, Airport, founder, "H3", "H4")
	found(t, chains, board, bank, Continental, founder, "G6", "H6")

	placement := AnalyzePosition(pos(t, "H5"), board, chains)
	require.Equal(t, PlaceFusion, placement.Kind)
	assert.ElementsMatch(t, []Chain{Airport, Continental}, placement.Chains)
}

func TestAnalyzeFusionIllegalBetweenSafeChains(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)

	// Two chains of 11 hotels each, one cell apart on column 1.
	var rowA, rowC []string
	for n := 1; n <= 11; n++ {
		rowA = append(rowA, fmt.Sprintf("A%d", n))
		rowC = append(rowC, fmt.Sprintf("C%d", n))
	}
	found(t, chains, board, bank, Airport, founder, rowA...)
	found(t, chains, board, bank, Continental, founder, rowC...)
	require.True(t, chains.IsSafe(Airport))
	require.True(t, chains.IsSafe(Continental))

	placement := AnalyzePosition(pos(t, "B1"), board, chains)
	require.Equal(t, PlaceIllegal, placement.Kind)
	assert.Equal(t, FusionIllegal, placement.Reason)
}

func TestAnalyzeChainStartIllegalWhenAllActive(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)

	// Seven founded chains exhaust the supply of identities.
	pairs := [][]string{
		{"A1", "A2"}, {"C1", "C2"}, {"E1", "E2"}, {"G1", "G2"},
		{"I1", "I2"}, {"A5", "A6"}, {"C5", "C6"},
	}
	for i, chain := range Chains() {
		found(t, chains, board, bank, chain, founder, pairs[i]...)
	}
	require.Nil(t, chains.AvailableChains())

	require.NoError(t, board.Place(pos(t, "E5")))
	placement := AnalyzePosition(pos(t, "E6"), board, chains)
	require.Equal(t, PlaceIllegal, placement.Kind)
	assert.Equal(t, ChainStartIllegal, placement.Reason)
}

func TestAnalyzeDeduplicatesChainNeighbours(t *testing.T) {
	t.Parallel()

	board := NewBoard()
	chains := NewChainManager(testLogger())
	bank := NewBank(testLogger())
	founder := NewPlayer(0, "alice", nil)

	// The origin touches the same chain on two sides; that is an extension,
	// not a fusion.
	found(t, chains, board, bank, Luxor, founder, "D4", "D5", "E5", "F5", "F4")

	placement := AnalyzePosition(pos(t, "E4"), board, chains)
	require.Equal(t, PlaceExtendsChain, placement.Kind)
	assert.Equal(t, Luxor, placement.Chain)
}
