package client

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/acquire/internal/server"
)

// AutoPlayer is a Handler that plays without a human: first legal card,
// first offered chain, keeps its stock, buys one share of the cheapest
// offered chain, and accepts the end of the game. Useful for filling seats
// in demos and tests.
type AutoPlayer struct {
	logger *log.Logger
}

// NewAutoPlayer creates an automatic player.
func NewAutoPlayer(logger *log.Logger) *AutoPlayer {
	return &AutoPlayer{logger: logger.WithPrefix("auto")}
}

func (a *AutoPlayer) HandleWelcome(data server.WelcomeData) {
	a.logger.Info("seated", "game", data.GameID, "seat", data.Seat)
}

func (a *AutoPlayer) HandleGameStarted(data server.GameStartedData) {
	a.logger.Info("game started", "players", data.Players)
}

func (a *AutoPlayer) HandleState(server.GameStateData) {}

func (a *AutoPlayer) HandleHand(server.HandData) {}

func (a *AutoPlayer) HandleEvent(data server.GameEventData) {
	a.logger.Debug("event", "type", data.Event, "player", data.Player)
}

func (a *AutoPlayer) Decide(data server.ActionRequiredData) (server.DecisionData, error) {
	var answer server.DecisionData
	switch data.Decision {
	case server.DecideCard:
		answer.CardIndex = 0
	case server.DecideChain, server.DecideSurvivor:
		if len(data.Chains) == 0 {
			return answer, fmt.Errorf("%s with no options", data.Decision)
		}
		answer.Chain = data.Chains[0]
	case server.DecideStock:
		// Keep everything.
	case server.DecideBuy:
		if len(data.Chains) > 0 && data.Max > 0 {
			answer.Chains = []string{data.Chains[0]}
		}
	case server.DecideEnd:
		answer.Accept = true
	default:
		return answer, fmt.Errorf("unknown decision %q", data.Decision)
	}
	return answer, nil
}

func (a *AutoPlayer) HandleGameOver(data server.GameOverData) {
	a.logger.Info("game over", "reason", data.Reason)
}

func (a *AutoPlayer) HandleError(data server.ErrorData) {
	a.logger.Error("server error", "code", data.Code, "message", data.Message)
}

var _ Handler = (*AutoPlayer)(nil)
