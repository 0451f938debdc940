package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/acquire/internal/game"
	"github.com/lox/acquire/internal/gameid"
)

// DefaultDecisionTimeout is how long a remote player gets to answer.
const DefaultDecisionTimeout = 2 * time.Minute

// maxAnswerAttempts bounds how often an unparsable answer is re-requested
// before the seat gives up. Well-formed but illegal answers are the
// engine's to reject; this only covers chain names the protocol cannot
// resolve, so one malformed client message never aborts the game.
const maxAnswerAttempts = 10

// NetworkAgent plays one seat over a WebSocket connection. Every engine
// question becomes an action_required message; the answer is matched back
// by request ID. Methods block the engine loop, which is what serializes
// remote play through the single-threaded game.
type NetworkAgent struct {
	conn    *Connection
	timeout time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	pending map[string]chan DecisionData
}

// NewNetworkAgent creates an agent speaking to conn.
func NewNetworkAgent(conn *Connection, logger *log.Logger) *NetworkAgent {
	return &NetworkAgent{
		conn:    conn,
		timeout: DefaultDecisionTimeout,
		logger:  logger.WithPrefix("agent"),
		pending: make(map[string]chan DecisionData),
	}
}

// Resolve delivers an inbound decision to the request waiting on it.
// Answers to unknown or expired requests are dropped.
func (a *NetworkAgent) Resolve(data DecisionData) {
	a.mu.Lock()
	ch, ok := a.pending[data.RequestID]
	if ok {
		delete(a.pending, data.RequestID)
	}
	a.mu.Unlock()
	if !ok {
		a.logger.Warn("decision for unknown request", "requestId", data.RequestID)
		return
	}
	ch <- data
}

func (a *NetworkAgent) request(kind DecisionKind, data ActionRequiredData) (DecisionData, error) {
	data.Decision = kind
	msg, err := NewMessage(MessageTypeActionRequired, data)
	if err != nil {
		return DecisionData{}, err
	}
	msg.RequestID = gameid.New()

	ch := make(chan DecisionData, 1)
	a.mu.Lock()
	a.pending[msg.RequestID] = ch
	a.mu.Unlock()

	if err := a.conn.Send(msg); err != nil {
		a.mu.Lock()
		delete(a.pending, msg.RequestID)
		a.mu.Unlock()
		return DecisionData{}, fmt.Errorf("send %s: %w", kind, err)
	}

	select {
	case answer := <-ch:
		return answer, nil
	case <-a.conn.Done():
		return DecisionData{}, fmt.Errorf("%s: %w", kind, ErrConnectionClosed)
	case <-time.After(a.timeout):
		a.mu.Lock()
		delete(a.pending, msg.RequestID)
		a.mu.Unlock()
		return DecisionData{}, fmt.Errorf("%s: player %s timed out", kind, a.conn.PlayerName())
	}
}

func (a *NetworkAgent) ChooseCard(snap *game.Snapshot, _ *game.Player, playable []game.AnalyzedCard) (int, error) {
	cards := make([]CardInfo, len(playable))
	for i, card := range playable {
		cards[i] = CardInfoFromGame(card)
	}
	answer, err := a.request(DecideCard, ActionRequiredData{State: snap, Cards: cards})
	if err != nil {
		return 0, err
	}
	return answer.CardIndex, nil
}

// requestChain asks until the answer names a chain the protocol knows,
// telling the client about each unresolvable name.
func (a *NetworkAgent) requestChain(kind DecisionKind, data ActionRequiredData) (game.Chain, error) {
	for attempt := 0; attempt < maxAnswerAttempts; attempt++ {
		answer, err := a.request(kind, data)
		if err != nil {
			return 0, err
		}
		chain, ok := chainByName(answer.Chain)
		if !ok {
			a.logger.Warn("unknown chain in answer, asking again",
				"player", a.conn.PlayerName(), "chain", answer.Chain)
			a.conn.SendError("unknown_chain", fmt.Sprintf("unknown chain %q", answer.Chain))
			continue
		}
		return chain, nil
	}
	return 0, fmt.Errorf("%s: player %s kept answering with unknown chains", kind, a.conn.PlayerName())
}

func (a *NetworkAgent) ChooseChain(snap *game.Snapshot, available []game.Chain) (game.Chain, error) {
	return a.requestChain(DecideChain, ActionRequiredData{State: snap, Chains: chainNames(available)})
}

func (a *NetworkAgent) ChooseSurvivor(snap *game.Snapshot, tied []game.Chain) (game.Chain, error) {
	return a.requestChain(DecideSurvivor, ActionRequiredData{State: snap, Chains: chainNames(tied)})
}

func (a *NetworkAgent) ResolveDeadStock(snap *game.Snapshot, dead, alive game.Chain, held, price int) (game.StockDecision, error) {
	answer, err := a.request(DecideStock, ActionRequiredData{
		State: snap,
		Dead:  dead.Name(),
		Alive: alive.Name(),
		Held:  held,
		Price: price,
	})
	if err != nil {
		return game.StockDecision{}, err
	}
	return game.StockDecision{Sell: answer.Sell, Trade: answer.Trade}, nil
}

func (a *NetworkAgent) BuyStocks(snap *game.Snapshot, _ *game.Player, buyable []game.Chain, max int) ([]game.Chain, error) {
	data := ActionRequiredData{State: snap, Chains: chainNames(buyable), Max: max}
	for attempt := 0; attempt < maxAnswerAttempts; attempt++ {
		answer, err := a.request(DecideBuy, data)
		if err != nil {
			return nil, err
		}
		picks := make([]game.Chain, 0, len(answer.Chains))
		valid := true
		for _, name := range answer.Chains {
			chain, ok := chainByName(name)
			if !ok {
				a.logger.Warn("unknown chain in purchase, asking again",
					"player", a.conn.PlayerName(), "chain", name)
				a.conn.SendError("unknown_chain", fmt.Sprintf("unknown chain %q", name))
				valid = false
				break
			}
			picks = append(picks, chain)
		}
		if valid {
			return picks, nil
		}
	}
	return nil, fmt.Errorf("%s: player %s kept answering with unknown chains", DecideBuy, a.conn.PlayerName())
}

func (a *NetworkAgent) ConfirmEndGame(snap *game.Snapshot, reason string) (bool, error) {
	answer, err := a.request(DecideEnd, ActionRequiredData{State: snap, Reason: reason})
	if err != nil {
		return false, err
	}
	return answer.Accept, nil
}

var _ game.Agent = (*NetworkAgent)(nil)
