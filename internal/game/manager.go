package game

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/acquire/internal/deck"
)

// safeLength is the chain size at which a chain can no longer be the dead
// side of a fusion.
const safeLength = 11

// ChainManager owns the mapping from each chain identity to the board
// positions currently belonging to it. A chain with no record is inactive
// and may be founded; founding creates a record of at least two positions.
type ChainManager struct {
	records map[Chain][]deck.Position
	logger  *log.Logger
}

// NewChainManager creates a manager with all seven chains inactive.
func NewChainManager(logger *log.Logger) *ChainManager {
	return &ChainManager{
		records: make(map[Chain][]deck.Position, NumChains),
		logger:  logger.WithPrefix("chains"),
	}
}

// ChainLength returns the number of hotels in the chain, 0 if inactive.
func (m *ChainManager) ChainLength(chain Chain) int {
	return len(m.records[chain])
}

// IsActive reports whether the chain has been founded.
func (m *ChainManager) IsActive(chain Chain) bool {
	_, ok := m.records[chain]
	return ok
}

// IsSafe reports whether the chain has grown large enough (>= 11 hotels)
// to be immune from being absorbed in a fusion.
func (m *ChainManager) IsSafe(chain Chain) bool {
	return m.ChainLength(chain) >= safeLength
}

// PriceTier returns the chain's current pricing bucket.
func (m *ChainManager) PriceTier(chain Chain) Tier {
	return TierFor(m.ChainLength(chain))
}

// Positions returns a copy of the chain's record, sorted row-major.
func (m *ChainManager) Positions(chain Chain) []deck.Position {
	record := m.records[chain]
	positions := make([]deck.Position, len(record))
	copy(positions, record)
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	return positions
}

// ActiveChains returns the chains that currently have a record.
func (m *ChainManager) ActiveChains() []Chain {
	var active []Chain
	for _, chain := range Chains() {
		if m.IsActive(chain) {
			active = append(active, chain)
		}
	}
	return active
}

// AvailableChains returns the chains that may still be founded, or nil when
// all seven are active and no new chain may be started.
func (m *ChainManager) AvailableChains() []Chain {
	var available []Chain
	for _, chain := range Chains() {
		if !m.IsActive(chain) {
			available = append(available, chain)
		}
	}
	return available
}

// StartChain founds a chain from the given positions, assigns them on the
// board and grants the founder one bonus share from the bank's pool. The
// bonus is best effort: an empty pool is not an error.
//
// Positions that were never placed on the board are placed here first. That
// is tolerated caller behaviour, logged as a corrective warning.
func (m *ChainManager) StartChain(chain Chain, positions []deck.Position, board *Board, founder *Player, bank *Bank) error {
	if len(positions) < 2 {
		return fmt.Errorf("start %s with %d positions: %w", chain, len(positions), ErrNotEnoughBuildings)
	}
	if m.IsActive(chain) {
		return fmt.Errorf("start %s: %w", chain, ErrAlreadyFounded)
	}
	record := make([]deck.Position, 0, len(positions))
	for _, pos := range positions {
		if board.Occupancy(pos).State == Empty {
			m.logger.Warn("founding from unplaced position, placing it now",
				"chain", chain, "position", pos)
			if err := board.Place(pos); err != nil {
				return fmt.Errorf("start %s: %w", chain, err)
			}
		}
		if err := board.AssignChain(chain, pos); err != nil {
			return fmt.Errorf("start %s: %w", chain, err)
		}
		record = append(record, pos)
	}
	m.records[chain] = record
	if err := bank.GiveBonusStock(chain, founder); err != nil {
		// Pool exhausted; the founder simply misses out.
		m.logger.Warn("no founder bonus stock available", "chain", chain, "player", founder.Name)
	}
	m.logger.Debug("chain founded", "chain", chain, "size", len(record), "founder", founder.Name)
	return nil
}

// AddHotelToChain appends a position to an active chain's record and
// assigns it on the board.
func (m *ChainManager) AddHotelToChain(chain Chain, pos deck.Position, board *Board) error {
	if !m.IsActive(chain) {
		return fmt.Errorf("add %s to %s: %w", pos, chain, ErrChainNotFounded)
	}
	if err := board.AssignChain(chain, pos); err != nil {
		return fmt.Errorf("add %s to %s: %w", pos, chain, err)
	}
	m.records[chain] = append(m.records[chain], pos)
	return nil
}

// FuseChains merges dead's entire record into alive and deletes dead. Every
// position formerly owned by dead is reassigned on the board. Stock
// conversion for dead's shareholders is the turn flow's job, resolved
// before this call.
func (m *ChainManager) FuseChains(alive, dead Chain, board *Board) error {
	if !m.IsActive(alive) {
		return fmt.Errorf("fuse %s into %s: %s: %w", dead, alive, alive, ErrChainMissing)
	}
	if !m.IsActive(dead) {
		return fmt.Errorf("fuse %s into %s: %s: %w", dead, alive, dead, ErrChainMissing)
	}
	for _, pos := range m.records[dead] {
		if err := board.AssignChain(alive, pos); err != nil {
			return fmt.Errorf("fuse %s into %s: %w", dead, alive, err)
		}
		m.records[alive] = append(m.records[alive], pos)
	}
	delete(m.records, dead)
	m.logger.Debug("chains fused", "alive", alive, "dead", dead, "size", m.ChainLength(alive))
	return nil
}
