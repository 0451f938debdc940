package game

import (
	"github.com/lox/acquire/internal/deck"
)

// Snapshot is a read-only view of the game state exposed after every
// mutation for rendering and transport. The core never formats text or
// colors; consumers do.
type Snapshot struct {
	Round      int             `json:"round"`
	Cells      []CellSnapshot  `json:"cells"`
	Chains     []ChainSnapshot `json:"chains"`
	Players    []PlayerSummary `json:"players"`
	CardsLeft  int             `json:"cardsLeft"`
	GameOver   bool            `json:"gameOver"`
	OverReason string          `json:"overReason,omitempty"`
}

// CellSnapshot describes one occupied board cell. Empty cells are omitted.
type CellSnapshot struct {
	Position deck.Position `json:"position"`
	Chain    string        `json:"chain,omitempty"`
}

// ChainSnapshot describes one chain's public stats.
type ChainSnapshot struct {
	Chain      Chain `json:"chain"`
	Active     bool  `json:"active"`
	Length     int   `json:"length"`
	Tier       Tier  `json:"tier"`
	Safe       bool  `json:"safe"`
	Price      int   `json:"price"`
	PoolShares int   `json:"poolShares"`
	Largest    []int `json:"largest,omitempty"`
	Second     []int `json:"second,omitempty"`
}

// PlayerSummary describes one player's public state. Hands are private and
// never included; each player sees their own hand through their Agent.
type PlayerSummary struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Cash  int      `json:"cash"`
	Stock Holdings `json:"stock"`
}

// BuildSnapshot assembles a snapshot from the live components.
func BuildSnapshot(round int, board *Board, chains *ChainManager, bank *Bank, players []*Player, cardsLeft int) *Snapshot {
	snap := &Snapshot{Round: round, CardsLeft: cardsLeft}

	for _, pos := range deck.AllPositions() {
		occ := board.Occupancy(pos)
		switch occ.State {
		case PlacedUnassigned:
			snap.Cells = append(snap.Cells, CellSnapshot{Position: pos})
		case PlacedAssigned:
			snap.Cells = append(snap.Cells, CellSnapshot{Position: pos, Chain: occ.Chain.Name()})
		}
	}

	for _, chain := range Chains() {
		snap.Chains = append(snap.Chains, ChainSnapshot{
			Chain:      chain,
			Active:     chains.IsActive(chain),
			Length:     chains.ChainLength(chain),
			Tier:       chains.PriceTier(chain),
			Safe:       chains.IsSafe(chain),
			Price:      StockPriceFor(chains, chain),
			PoolShares: bank.PoolSize(chain),
			Largest:    bank.LargestShareholders(chain),
			Second:     bank.SecondLargestShareholders(chain),
		})
	}

	for _, p := range players {
		snap.Players = append(snap.Players, PlayerSummary{
			ID:    p.ID,
			Name:  p.Name,
			Cash:  p.Cash,
			Stock: p.Stock,
		})
	}
	return snap
}
