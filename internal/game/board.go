package game

import (
	"fmt"

	"github.com/lox/acquire/internal/deck"
)

// OccupancyState is the three-way occupancy result for a cell. The
// classifier depends on distinguishing "no neighbour" from "neutral
// neighbour" from "chain neighbour".
type OccupancyState int

const (
	// Empty means nothing has been placed on the cell.
	Empty OccupancyState = iota
	// PlacedUnassigned means a hotel stands on the cell but belongs to no chain.
	PlacedUnassigned
	// PlacedAssigned means a hotel stands on the cell and belongs to a chain.
	PlacedAssigned
)

// Occupancy describes one cell. Chain is only meaningful when State is
// PlacedAssigned.
type Occupancy struct {
	State OccupancyState
	Chain Chain
}

// Piece is the state of a single board cell.
type Piece struct {
	Placed   bool
	Chain    Chain
	HasChain bool
}

// Board is the fixed 9x12 grid of pieces. It knows nothing about the game
// rules beyond "is this cell occupied, and by whom". Mutation comes only
// from the turn flow and the ChainManager; there is no internal locking
// because the engine is single-threaded.
type Board struct {
	pieces [deck.Rows][deck.Columns]Piece
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

func (b *Board) index(pos deck.Position) (row, col int, ok bool) {
	if !pos.Valid() {
		return 0, 0, false
	}
	return int(pos.Letter - 'A'), pos.Number - 1, true
}

// Place marks the cell as occupied. Placing on an occupied cell is a caller
// error, not a no-op. Chain assignment is untouched.
func (b *Board) Place(pos deck.Position) error {
	row, col, ok := b.index(pos)
	if !ok {
		return fmt.Errorf("place %s: %w", pos, ErrPositionInvalid)
	}
	if b.pieces[row][col].Placed {
		return fmt.Errorf("place %s: %w", pos, ErrAlreadyPlaced)
	}
	b.pieces[row][col].Placed = true
	return nil
}

// AssignChain sets the chain owning the cell, overwriting any previous
// assignment. It fails only for positions outside the board; callers place
// first.
func (b *Board) AssignChain(chain Chain, pos deck.Position) error {
	row, col, ok := b.index(pos)
	if !ok {
		return fmt.Errorf("assign %s to %s: %w", chain, pos, ErrPositionInvalid)
	}
	b.pieces[row][col].Chain = chain
	b.pieces[row][col].HasChain = true
	return nil
}

// Occupancy returns the three-way occupancy of the cell. Out-of-bounds
// positions report Empty, which matches how boundary neighbours behave.
func (b *Board) Occupancy(pos deck.Position) Occupancy {
	row, col, ok := b.index(pos)
	if !ok {
		return Occupancy{State: Empty}
	}
	piece := b.pieces[row][col]
	switch {
	case !piece.Placed:
		return Occupancy{State: Empty}
	case !piece.HasChain:
		return Occupancy{State: PlacedUnassigned}
	default:
		return Occupancy{State: PlacedAssigned, Chain: piece.Chain}
	}
}

// Piece returns a copy of the cell state, for rendering.
func (b *Board) Piece(pos deck.Position) (Piece, bool) {
	row, col, ok := b.index(pos)
	if !ok {
		return Piece{}, false
	}
	return b.pieces[row][col], true
}
