package game

import (
	"fmt"
)

// StockDecision says what a player does with their shares of an absorbed
// chain during a fusion. Sell + Trade must not exceed the held amount and
// Trade must be even; anything left over is kept.
type StockDecision struct {
	Sell  int
	Trade int
}

// Agent supplies one player's decisions. The engine validates every answer
// against the rules and re-prompts on illegal input; agents are never
// silently overridden with a legal default.
//
// All methods block the turn loop until an answer arrives, which is how
// remote players serialize through the single-threaded engine.
type Agent interface {
	// ChooseCard picks which playable card to place. playable is never
	// empty and indexes into the slice are the expected answer.
	ChooseCard(snap *Snapshot, player *Player, playable []AnalyzedCard) (int, error)

	// ChooseChain picks which inactive chain to found.
	ChooseChain(snap *Snapshot, available []Chain) (Chain, error)

	// ChooseSurvivor breaks a size tie between fusing chains.
	ChooseSurvivor(snap *Snapshot, tied []Chain) (Chain, error)

	// ResolveDeadStock decides what to do with held shares of a chain
	// being absorbed. held is the player's share count, price the
	// pre-fusion price per share.
	ResolveDeadStock(snap *Snapshot, dead, alive Chain, held, price int) (StockDecision, error)

	// BuyStocks picks up to max purchases from the buyable chains. The
	// same chain may appear more than once. An empty answer skips buying.
	BuyStocks(snap *Snapshot, player *Player, buyable []Chain, max int) ([]Chain, error)

	// ConfirmEndGame asks whether to end the game now that an end
	// condition holds. Declining continues normal play.
	ConfirmEndGame(snap *Snapshot, reason string) (bool, error)
}

// ScriptedAgent is a deterministic Agent for tests and demos. It plays the
// first legal option everywhere unless a script overrides it.
type ScriptedAgent struct {
	// CardPicks are consumed one per turn; when exhausted the first
	// playable card is chosen.
	CardPicks []int
	// ChainPicks are consumed on each founding decision.
	ChainPicks []Chain
	// SurvivorPicks are consumed on each fusion tie break.
	SurvivorPicks []Chain
	// Purchases is returned from every BuyStocks call.
	Purchases []Chain
	// Decision is returned from every ResolveDeadStock call, clamped to
	// the held amount by the engine's validation.
	Decision StockDecision
	// EndGame is the standing answer to ConfirmEndGame.
	EndGame bool
}

func (a *ScriptedAgent) ChooseCard(_ *Snapshot, _ *Player, playable []AnalyzedCard) (int, error) {
	if len(a.CardPicks) > 0 {
		pick := a.CardPicks[0]
		a.CardPicks = a.CardPicks[1:]
		if pick < 0 || pick >= len(playable) {
			return 0, fmt.Errorf("scripted card pick %d out of range", pick)
		}
		return pick, nil
	}
	return 0, nil
}

func (a *ScriptedAgent) ChooseChain(_ *Snapshot, available []Chain) (Chain, error) {
	if len(a.ChainPicks) > 0 {
		pick := a.ChainPicks[0]
		a.ChainPicks = a.ChainPicks[1:]
		return pick, nil
	}
	return available[0], nil
}

func (a *ScriptedAgent) ChooseSurvivor(_ *Snapshot, tied []Chain) (Chain, error) {
	if len(a.SurvivorPicks) > 0 {
		pick := a.SurvivorPicks[0]
		a.SurvivorPicks = a.SurvivorPicks[1:]
		return pick, nil
	}
	return tied[0], nil
}

func (a *ScriptedAgent) ResolveDeadStock(_ *Snapshot, _, _ Chain, held, _ int) (StockDecision, error) {
	d := a.Decision
	if d.Sell+d.Trade > held {
		d = StockDecision{}
	}
	return d, nil
}

func (a *ScriptedAgent) BuyStocks(_ *Snapshot, _ *Player, _ []Chain, _ int) ([]Chain, error) {
	return a.Purchases, nil
}

func (a *ScriptedAgent) ConfirmEndGame(_ *Snapshot, _ string) (bool, error) {
	return a.EndGame, nil
}

var _ Agent = (*ScriptedAgent)(nil)
