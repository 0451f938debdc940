package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/acquire/internal/deck"
	"github.com/lox/acquire/internal/randutil"
)

// testEngine builds an engine with hand-picked state instead of a dealt game.
func testEngine(t *testing.T, agents ...Agent) *Engine {
	t.Helper()
	players := make([]*Player, len(agents))
	for i := range agents {
		players[i] = NewPlayer(i, string(rune('a'+i)), nil)
	}
	return &Engine{
		board:   NewBoard(),
		chains:  NewChainManager(testLogger()),
		bank:    NewBank(testLogger()),
		players: players,
		agents:  agents,
		pile:    deck.NewPile(randutil.New(1)),
		bus:     NewEventBus(),
		logger:  testLogger(),
	}
}

func TestNewEngineValidatesPlayerCount(t *testing.T) {
	t.Parallel()

	_, err := NewEngine([]string{"solo"}, []Agent{&ScriptedAgent{}}, testLogger(), randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	agents := make([]Agent, len(names))
	for i := range agents {
		agents[i] = &ScriptedAgent{}
	}
	_, err = NewEngine(names, agents, testLogger(), randutil.New(1))
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)
}

func TestNewEngineDealsHands(t *testing.T) {
	t.Parallel()

	e, err := NewEngine([]string{"alice", "bob"},
		[]Agent{&ScriptedAgent{}, &ScriptedAgent{}}, testLogger(), randutil.New(1))
	require.NoError(t, err)

	seen := make(map[deck.Position]bool)
	for _, p := range e.Players() {
		assert.Len(t, p.Cards, CardsPerHand)
		assert.Equal(t, StartingCash, p.Cash)
		for _, card := range p.Cards {
			assert.False(t, seen[card], "card %s dealt twice", card)
			seen[card] = true
		}
	}
	assert.Equal(t, deck.Rows*deck.Columns-2*CardsPerHand, e.pile.Remaining())
}

func TestRoundIsSingleUse(t *testing.T) {
	t.Parallel()

	e := testEngine(t, &ScriptedAgent{}, &ScriptedAgent{})
	round := NewRound(1, testLogger())

	_, err := round.Run(e)
	require.NoError(t, err)

	_, err = round.Run(e)
	assert.ErrorIs(t, err, ErrRoundAlreadyStarted)
}

func TestFusionThroughEngine(t *testing.T) {
	t.Parallel()

	agent := &ScriptedAgent{Decision: StockDecision{Sell: 2, Trade: 2}}
	e := testEngine(t, agent)
	p := e.players[0]

	found(t, e.chains, e.board, e.bank, Airport, p, "H2", "H3", "H4")
	found(t, e.chains, e.board, e.bank, Continental, p, "G6", "H6")
	p.Stock.Set(Continental, 4)

	origin := pos(t, "H5")
	require.NoError(t, e.board.Place(origin))
	require.NoError(t, e.resolveFusion(0, []Chain{Airport, Continental}, origin))

	// Airport was larger and survives, absorbing Continental and the
	// connecting piece.
	assert.False(t, e.chains.IsActive(Continental))
	assert.Equal(t, 6, e.chains.ChainLength(Airport))
	assert.Equal(t, Airport, e.board.Occupancy(origin).Chain)
	assert.Equal(t, Airport, e.board.Occupancy(pos(t, "G6")).Chain)

	// Sole Continental holder at price 400: 4000 + 2000 in bonuses, plus
	// 800 for the two shares sold. Two more traded into one Airport share.
	assert.Equal(t, StartingCash+4000+2000+800, p.Cash)
	assert.Equal(t, 0, p.Stock.Get(Continental))
	assert.Equal(t, 2, p.Stock.Get(Airport)) // founder bonus + trade
}

func TestFusionSurvivorTieGoesToActingPlayer(t *testing.T) {
	t.Parallel()

	agent := &ScriptedAgent{SurvivorPicks: []Chain{Continental}}
	e := testEngine(t, agent)
	p := e.players[0]

	found(t, e.chains, e.board, e.bank, Airport, p, "H3", "H4")
	found(t, e.chains, e.board, e.bank, Continental, p, "G6", "H6")

	origin := pos(t, "H5")
	require.NoError(t, e.board.Place(origin))
	require.NoError(t, e.resolveFusion(0, []Chain{Airport, Continental}, origin))

	assert.True(t, e.chains.IsActive(Continental))
	assert.False(t, e.chains.IsActive(Airport))
	assert.Equal(t, 5, e.chains.ChainLength(Continental))
}

func TestOfferPurchasesHonorsLimit(t *testing.T) {
	t.Parallel()

	agent := &ScriptedAgent{Purchases: []Chain{Luxor, Luxor, Luxor}}
	e := testEngine(t, agent)
	p := e.players[0]
	found(t, e.chains, e.board, e.bank, Luxor, p, "D4", "D5")

	require.NoError(t, e.offerPurchases(0))

	// Founder bonus plus three purchases at 300 each.
	assert.Equal(t, 4, p.Stock.Get(Luxor))
	assert.Equal(t, StartingCash-900, p.Cash)
}

func TestOfferPurchasesRejectsOverbuying(t *testing.T) {
	t.Parallel()

	agent := &ScriptedAgent{Purchases: []Chain{Luxor, Luxor, Luxor, Luxor}}
	e := testEngine(t, agent)
	p := e.players[0]
	found(t, e.chains, e.board, e.bank, Luxor, p, "D4", "D5")

	// The agent insists on four purchases every time it is asked; the
	// engine never executes any of them.
	err := e.offerPurchases(0)
	require.Error(t, err)
	assert.Equal(t, 1, p.Stock.Get(Luxor))
	assert.Equal(t, StartingCash, p.Cash)
}

func TestEndConditionGiantChain(t *testing.T) {
	t.Parallel()

	e := testEngine(t, &ScriptedAgent{})
	p := e.players[0]

	_, met := e.endCondition()
	require.False(t, met)

	var cards []string
	for _, cell := range deck.AllPositions()[:41] {
		cards = append(cards, cell.String())
	}
	found(t, e.chains, e.board, e.bank, Airport, p, cards...)

	reason, met := e.endCondition()
	require.True(t, met)
	assert.Equal(t, endReasonGiantChain, reason)
}

func TestDecliningEndConditionContinuesPlay(t *testing.T) {
	t.Parallel()

	// EndGame defaults to false: the agent declines every offer to end.
	e := testEngine(t, &ScriptedAgent{})
	p := e.players[0]

	var cards []string
	for _, cell := range deck.AllPositions()[:41] {
		cards = append(cards, cell.String())
	}
	found(t, e.chains, e.board, e.bank, Airport, p, cards...)

	reason, met := e.endCondition()
	require.True(t, met)
	assert.Equal(t, endReasonGiantChain, reason)

	over, err := e.playTurn(0)
	require.NoError(t, err)
	assert.False(t, over)
	assert.False(t, e.Finished())

	// Play continues normally: the replacement card is still drawn.
	assert.Len(t, p.Cards, 1)
}

func TestFullGameRunsToCompletion(t *testing.T) {
	t.Parallel()

	names := []string{"alice", "bob", "carol"}
	agents := []Agent{
		&ScriptedAgent{EndGame: true},
		&ScriptedAgent{EndGame: true},
		&ScriptedAgent{EndGame: true},
	}
	e, err := NewEngine(names, agents, testLogger(), randutil.New(99))
	require.NoError(t, err)

	var events int
	e.Events().Subscribe(func(Event) { events++ })

	require.NoError(t, e.Run())
	require.True(t, e.Finished())
	assert.Positive(t, events)

	snap := e.Snapshot()
	assert.True(t, snap.GameOver)
	assert.NotEmpty(t, snap.OverReason)

	// Stock conservation: every chain's shares sum to the full pool.
	for _, chain := range Chains() {
		total := e.Bank().PoolSize(chain)
		for _, p := range e.Players() {
			total += p.Stock.Get(chain)
		}
		assert.Equal(t, StocksPerChain, total, chain.Name())
	}

	for _, p := range e.Players() {
		assert.GreaterOrEqual(t, p.Cash, 0, p.Name)
	}

	// Chain records and board assignments agree.
	for _, chain := range e.Chains().ActiveChains() {
		for _, cell := range e.Chains().Positions(chain) {
			occ := e.Board().Occupancy(cell)
			assert.Equal(t, PlacedAssigned, occ.State)
			assert.Equal(t, chain, occ.Chain)
		}
	}
}
