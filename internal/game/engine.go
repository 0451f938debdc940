package game

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/acquire/internal/deck"
)

// StockPurchasesPerTurn caps how many shares a player may buy after placing.
const StockPurchasesPerTurn = 3

// maxPromptAttempts bounds how often an agent is re-prompted after illegal
// answers before the turn errors out. Illegal input is never silently
// replaced with a legal default.
const maxPromptAttempts = 10

// Engine owns the shared mutable game state and sequences rounds. All
// mutation flows through the engine on a single goroutine; agents block the
// loop until their answer arrives.
type Engine struct {
	board   *Board
	chains  *ChainManager
	bank    *Bank
	players []*Player
	agents  []Agent
	pile    *deck.Pile
	bus     *EventBus
	logger  *log.Logger

	roundNum   int
	finished   bool
	overReason string
}

// NewEngine sets up a game: validates the player count (2-6), shuffles the
// pile and deals each player their opening hand.
func NewEngine(names []string, agents []Agent, logger *log.Logger, rng *rand.Rand) (*Engine, error) {
	if len(names) < 2 || len(names) > 6 {
		return nil, fmt.Errorf("%d players: %w", len(names), ErrInvalidPlayerCount)
	}
	if len(agents) != len(names) {
		return nil, fmt.Errorf("got %d agents for %d players", len(agents), len(names))
	}
	pile := deck.NewPile(rng)
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(i, name, pile.DrawN(CardsPerHand))
	}
	return &Engine{
		board:   NewBoard(),
		chains:  NewChainManager(logger),
		bank:    NewBank(logger),
		players: players,
		agents:  agents,
		pile:    pile,
		bus:     NewEventBus(),
		logger:  logger.WithPrefix("engine"),
	}, nil
}

// Board returns the shared board.
func (e *Engine) Board() *Board { return e.board }

// Chains returns the chain manager.
func (e *Engine) Chains() *ChainManager { return e.chains }

// Bank returns the bank.
func (e *Engine) Bank() *Bank { return e.bank }

// Players returns the seated players in turn order.
func (e *Engine) Players() []*Player { return e.players }

// Events returns the bus the engine publishes to.
func (e *Engine) Events() *EventBus { return e.bus }

// Finished reports whether the game has concluded.
func (e *Engine) Finished() bool { return e.finished }

// Snapshot builds the current read-only view of the game.
func (e *Engine) Snapshot() *Snapshot {
	snap := BuildSnapshot(e.roundNum, e.board, e.chains, e.bank, e.players, e.pile.Remaining())
	snap.GameOver = e.finished
	snap.OverReason = e.overReason
	return snap
}

// Run plays rounds until the game concludes.
func (e *Engine) Run() error {
	for !e.finished {
		e.roundNum++
		round := NewRound(e.roundNum, e.logger)
		over, err := round.Run(e)
		if err != nil {
			return fmt.Errorf("round %d: %w", e.roundNum, err)
		}
		if over {
			e.finished = true
		}
		if !e.finished && e.noMovesLeft() {
			// Nothing left to place; the game cannot progress.
			e.overReason = endReasonNoCards
			e.finished = true
		}
	}
	e.bus.Publish(Event{Type: EventGameEnded, Round: e.roundNum, Reason: e.overReason})
	return nil
}

// playTurn resolves one player's full turn: refresh the hand analysis,
// resolve one placement, offer stock purchases, evaluate end conditions and
// draw a replacement card.
func (e *Engine) playTurn(idx int) (bool, error) {
	player := e.players[idx]
	agent := e.agents[idx]

	player.AnalyzeCards(e.board, e.chains)
	playable := player.PlayableCards()
	if len(playable) == 0 {
		e.logger.Info("no playable cards, placement skipped", "player", player.Name)
	} else {
		if err := e.resolvePlacement(idx, playable); err != nil {
			return false, err
		}
	}
	e.bank.UpdateLargestShareholders(e.players)

	if err := e.offerPurchases(idx); err != nil {
		return false, err
	}

	if reason, met := e.endCondition(); met {
		end, err := agent.ConfirmEndGame(e.Snapshot(), reason)
		if err != nil {
			return false, fmt.Errorf("confirm end of game: %w", err)
		}
		if end {
			e.overReason = reason
			return true, nil
		}
		e.logger.Info("end condition met but declined", "player", player.Name, "reason", reason)
	}

	if len(player.Cards) < CardsPerHand {
		if card, ok := e.pile.Draw(); ok {
			player.Cards = append(player.Cards, card)
		}
	}
	return false, nil
}

// resolvePlacement asks the agent for a card and applies what the
// classifier said it does.
func (e *Engine) resolvePlacement(idx int, playable []AnalyzedCard) error {
	player := e.players[idx]
	agent := e.agents[idx]

	var card AnalyzedCard
	for attempt := 0; ; attempt++ {
		if attempt >= maxPromptAttempts {
			return fmt.Errorf("player %s kept choosing invalid cards", player.Name)
		}
		pick, err := agent.ChooseCard(e.Snapshot(), player, playable)
		if err != nil {
			return fmt.Errorf("choose card: %w", err)
		}
		if pick < 0 || pick >= len(playable) {
			e.logger.Warn("invalid card pick, asking again", "player", player.Name, "pick", pick)
			continue
		}
		card = playable[pick]
		break
	}

	player.RemoveCard(card.Position)
	if err := e.board.Place(card.Position); err != nil {
		return err
	}
	e.bus.Publish(Event{Type: EventTilePlaced, Player: player.Name, Position: card.Position})

	switch card.Placement.Kind {
	case PlaceSingle:
		return nil
	case PlaceNewChain:
		return e.foundChain(idx, card.Placement.Members)
	case PlaceExtendsChain:
		return e.extendChain(player, card.Placement.Chain, card.Placement.Members)
	case PlaceFusion:
		return e.resolveFusion(idx, card.Placement.Chains, card.Position)
	default:
		// Illegal cards were filtered out of playable.
		return fmt.Errorf("unexpected placement kind %s", card.Placement.Kind)
	}
}

func (e *Engine) foundChain(idx int, members []deck.Position) error {
	player := e.players[idx]
	agent := e.agents[idx]
	available := e.chains.AvailableChains()

	var chain Chain
	for attempt := 0; ; attempt++ {
		if attempt >= maxPromptAttempts {
			return fmt.Errorf("player %s kept choosing unavailable chains", player.Name)
		}
		pick, err := agent.ChooseChain(e.Snapshot(), available)
		if err != nil {
			return fmt.Errorf("choose chain: %w", err)
		}
		if !containsChain(available, pick) {
			e.logger.Warn("chain not available, asking again", "player", player.Name, "chain", pick)
			continue
		}
		chain = pick
		break
	}

	if err := e.chains.StartChain(chain, members, e.board, player, e.bank); err != nil {
		return err
	}
	e.bank.UpdateLargestShareholders(e.players)
	e.bus.Publish(Event{Type: EventChainFounded, Player: player.Name, Chain: chain, Count: len(members)})
	return nil
}

func (e *Engine) extendChain(player *Player, chain Chain, members []deck.Position) error {
	for _, pos := range members {
		if err := e.chains.AddHotelToChain(chain, pos, e.board); err != nil {
			return err
		}
	}
	e.bus.Publish(Event{Type: EventChainExtended, Player: player.Name, Chain: chain, Count: len(members)})
	return nil
}

// resolveFusion merges every chain meeting at origin into a single
// survivor. The largest chain survives; the acting player breaks size ties.
// Smaller chains are absorbed one at a time, smallest first, and for each:
// majority bonuses are paid, every shareholder disposes of their dead-chain
// stock, then the board and records fuse.
func (e *Engine) resolveFusion(idx int, fusing []Chain, origin deck.Position) error {
	player := e.players[idx]

	alive, err := e.pickSurvivor(idx, fusing)
	if err != nil {
		return err
	}
	dying := make([]Chain, 0, len(fusing)-1)
	for _, chain := range fusing {
		if chain != alive {
			dying = append(dying, chain)
		}
	}
	sort.SliceStable(dying, func(i, j int) bool {
		return e.chains.ChainLength(dying[i]) < e.chains.ChainLength(dying[j])
	})

	for _, dead := range dying {
		e.bank.PayMajorityBonuses(e.players, dead, e.chains)
		if err := e.resolveDeadStock(idx, dead, alive); err != nil {
			return err
		}
		if err := e.chains.FuseChains(alive, dead, e.board); err != nil {
			return err
		}
	}

	// The origin piece and any loose neighbours now extend the survivor.
	if placement := AnalyzePosition(origin, e.board, e.chains); placement.Kind == PlaceExtendsChain {
		if err := e.extendChain(player, placement.Chain, placement.Members); err != nil {
			return err
		}
	}
	e.bank.UpdateLargestShareholders(e.players)
	e.bus.Publish(Event{Type: EventChainsFused, Player: player.Name, Chain: alive, Chains: fusing, Position: origin})
	return nil
}

func (e *Engine) pickSurvivor(idx int, fusing []Chain) (Chain, error) {
	player := e.players[idx]
	agent := e.agents[idx]

	longest := 0
	for _, chain := range fusing {
		if l := e.chains.ChainLength(chain); l > longest {
			longest = l
		}
	}
	var tied []Chain
	for _, chain := range fusing {
		if e.chains.ChainLength(chain) == longest {
			tied = append(tied, chain)
		}
	}
	if len(tied) == 1 {
		return tied[0], nil
	}
	for attempt := 0; ; attempt++ {
		if attempt >= maxPromptAttempts {
			return 0, fmt.Errorf("player %s kept choosing invalid survivors", player.Name)
		}
		pick, err := agent.ChooseSurvivor(e.Snapshot(), tied)
		if err != nil {
			return 0, fmt.Errorf("choose survivor: %w", err)
		}
		if !containsChain(tied, pick) {
			e.logger.Warn("chain not tied for survival, asking again", "player", player.Name, "chain", pick)
			continue
		}
		return pick, nil
	}
}

// resolveDeadStock walks the players in seating order, starting with the
// acting player, and lets each holder of dead-chain stock keep, sell at the
// pre-fusion price, or trade two-for-one into the surviving chain.
func (e *Engine) resolveDeadStock(idx int, dead, alive Chain) error {
	price := StockPriceFor(e.chains, dead)
	for i := range e.players {
		seat := (idx + i) % len(e.players)
		holder := e.players[seat]
		held := holder.Stock.Get(dead)
		if held == 0 {
			continue
		}
		var decision StockDecision
		for attempt := 0; ; attempt++ {
			if attempt >= maxPromptAttempts {
				return fmt.Errorf("player %s kept answering with invalid stock decisions", holder.Name)
			}
			d, err := e.agents[seat].ResolveDeadStock(e.Snapshot(), dead, alive, held, price)
			if err != nil {
				return fmt.Errorf("resolve %s stock: %w", dead, err)
			}
			if d.Sell < 0 || d.Trade < 0 || d.Sell+d.Trade > held || d.Trade%2 != 0 {
				e.logger.Warn("invalid stock decision, asking again",
					"player", holder.Name, "sell", d.Sell, "trade", d.Trade, "held", held)
				continue
			}
			decision = d
			break
		}
		if decision.Sell > 0 {
			e.bank.SellStock(dead, decision.Sell, price, holder)
		}
		if decision.Trade > 0 {
			e.bank.TradeStock(dead, alive, decision.Trade, holder)
		}
		e.logger.Debug("fusion stock resolved", "player", holder.Name, "dead", dead,
			"sold", decision.Sell, "traded", decision.Trade, "kept", holder.Stock.Get(dead))
	}
	return nil
}

// offerPurchases lets the acting player buy up to three shares. Illegal
// picks are rejected and the player re-prompted for the remainder.
func (e *Engine) offerPurchases(idx int) error {
	player := e.players[idx]
	agent := e.agents[idx]

	remaining := StockPurchasesPerTurn
	for attempt := 0; remaining > 0; attempt++ {
		if attempt >= maxPromptAttempts {
			return fmt.Errorf("player %s kept requesting invalid purchases", player.Name)
		}
		buyable := e.buyableChains(player)
		if len(buyable) == 0 {
			return nil
		}
		picks, err := agent.BuyStocks(e.Snapshot(), player, buyable, remaining)
		if err != nil {
			return fmt.Errorf("buy stocks: %w", err)
		}
		if len(picks) == 0 {
			return nil
		}
		if len(picks) > remaining {
			e.logger.Warn("too many purchases requested, asking again",
				"player", player.Name, "requested", len(picks), "allowed", remaining)
			continue
		}
		ok := true
		for _, chain := range picks {
			if err := e.bank.BuyStock(e.chains, chain, player); err != nil {
				e.logger.Warn("purchase rejected, asking again", "player", player.Name, "error", err)
				ok = false
				break
			}
			remaining--
			e.bank.UpdateLargestShareholders(e.players)
			e.bus.Publish(Event{Type: EventStockPurchased, Player: player.Name, Chain: chain})
		}
		if ok {
			return nil
		}
	}
	return nil
}

// buyableChains returns the active chains the player could buy at least one
// share of right now.
func (e *Engine) buyableChains(player *Player) []Chain {
	var buyable []Chain
	for _, chain := range e.chains.ActiveChains() {
		if e.bank.StocksAvailable(chain, e.chains) == 0 {
			continue
		}
		if StockPriceFor(e.chains, chain) > player.Cash {
			continue
		}
		buyable = append(buyable, chain)
	}
	return buyable
}

// End-of-game conditions. The reference implementation left these stubbed;
// the concrete thresholds here are: every active chain is safe and no
// placement anywhere could found a new chain, or any chain has grown to 41
// hotels or more. Meeting one only offers the acting player the choice to
// end; it never ends the game automatically.
const (
	endReasonAllSafe    = "all active chains are safe and no new chain can be founded"
	endReasonGiantChain = "one chain has 41 or more hotels"
	endReasonNoCards    = "no cards remain to play"
)

// noMovesLeft reports whether the pile is exhausted and no player holds a
// playable card. Cards stuck as permanently illegal count as unplayable.
func (e *Engine) noMovesLeft() bool {
	if e.pile.Remaining() > 0 {
		return false
	}
	for _, p := range e.players {
		p.AnalyzeCards(e.board, e.chains)
		if len(p.PlayableCards()) > 0 {
			return false
		}
	}
	return true
}

func (e *Engine) endCondition() (string, bool) {
	for _, chain := range Chains() {
		if e.chains.ChainLength(chain) >= 41 {
			return endReasonGiantChain, true
		}
	}

	active := e.chains.ActiveChains()
	if len(active) == 0 {
		return "", false
	}
	for _, chain := range active {
		if !e.chains.IsSafe(chain) {
			return "", false
		}
	}
	if e.newChainPossible() {
		return "", false
	}
	return endReasonAllSafe, true
}

// newChainPossible reports whether any empty cell could found a chain now,
// or whether two adjacent empty cells could both take single hotels and
// found one later.
func (e *Engine) newChainPossible() bool {
	for _, pos := range deck.AllPositions() {
		if e.board.Occupancy(pos).State != Empty {
			continue
		}
		switch AnalyzePosition(pos, e.board, e.chains).Kind {
		case PlaceNewChain:
			return true
		case PlaceSingle:
			for _, neighbour := range pos.Neighbours() {
				if e.board.Occupancy(neighbour).State != Empty {
					continue
				}
				if AnalyzePosition(neighbour, e.board, e.chains).Kind == PlaceSingle {
					return true
				}
			}
		}
	}
	return false
}
