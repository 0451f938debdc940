package game

import (
	"github.com/charmbracelet/log"
)

// Round sequences one ordered pass over all players in fixed seating order.
// A Round is single-use; starting it twice fails.
type Round struct {
	Number  int
	started bool
	logger  *log.Logger
}

// NewRound creates round number n.
func NewRound(n int, logger *log.Logger) *Round {
	return &Round{Number: n, logger: logger.WithPrefix("round")}
}

// Run plays every player's turn once. It returns true when the game has
// concluded and no further round should start.
func (r *Round) Run(e *Engine) (bool, error) {
	if r.started {
		return false, ErrRoundAlreadyStarted
	}
	r.started = true
	r.logger.Debug("round starting", "round", r.Number)
	e.bus.Publish(Event{Type: EventRoundStarted, Round: r.Number})

	for idx := range e.players {
		gameOver, err := e.playTurn(idx)
		if err != nil {
			return false, err
		}
		if gameOver {
			r.logger.Info("game over", "round", r.Number, "reason", e.overReason)
			return true, nil
		}
	}
	return false, nil
}
