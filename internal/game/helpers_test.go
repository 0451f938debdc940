package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/acquire/internal/deck"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func pos(t *testing.T, s string) deck.Position {
	t.Helper()
	p, err := deck.ParsePosition(s)
	require.NoError(t, err)
	return p
}

func positions(t *testing.T, cards ...string) []deck.Position {
	t.Helper()
	out := make([]deck.Position, len(cards))
	for i, s := range cards {
		out[i] = pos(t, s)
	}
	return out
}

// found places the positions and starts the chain from them.
func found(t *testing.T, chains *ChainManager, board *Board, bank *Bank, chain Chain, founder *Player, cards ...string) {
	t.Helper()
	members := positions(t, cards...)
	for _, p := range members {
		if board.Occupancy(p).State == Empty {
			require.NoError(t, board.Place(p))
		}
	}
	require.NoError(t, chains.StartChain(chain, members, board, founder, bank))
}
