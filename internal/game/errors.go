package game

import "errors"

// Rules errors. Everything here is recoverable by the turn flow (re-prompt,
// skip or refuse the move) except ErrInvalidPlayerCount, which aborts game
// creation.
var (
	// ErrInvalidPlayerCount is returned by NewEngine for player counts
	// outside 2-6.
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 6")

	// ErrAlreadyPlaced is returned by Board.Place when the cell is occupied.
	ErrAlreadyPlaced = errors.New("hotel has already been placed")

	// ErrPositionInvalid is returned for positions outside the board.
	ErrPositionInvalid = errors.New("position is outside the board")

	// ErrNotEnoughBuildings is returned by StartChain with fewer than two
	// founding positions.
	ErrNotEnoughBuildings = errors.New("a chain needs at least two buildings")

	// ErrAlreadyFounded is returned by StartChain for an active chain.
	ErrAlreadyFounded = errors.New("chain has already been founded")

	// ErrChainNotFounded is returned by AddHotelToChain for an inactive chain.
	ErrChainNotFounded = errors.New("chain has not been founded")

	// ErrChainMissing is returned by FuseChains when a side is inactive.
	ErrChainMissing = errors.New("chain is not active")

	// ErrChainNotActive is returned by BuyStock for an inactive chain.
	ErrChainNotActive = errors.New("no stock can be bought for an inactive chain")

	// ErrNoStockAvailable is returned when the bank's pool for a chain is empty.
	ErrNoStockAvailable = errors.New("no stocks available")

	// ErrInsufficientFunds is returned when the price exceeds the player's cash.
	ErrInsufficientFunds = errors.New("not enough money")

	// ErrRoundAlreadyStarted is returned when a Round is started twice.
	ErrRoundAlreadyStarted = errors.New("round has already been started")
)
