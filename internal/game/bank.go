package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Bank owns the finite stock pool and knows who the majority shareholders
// are. Player cash lives on the Player; the bank moves it.
type Bank struct {
	pool    Holdings
	largest map[Chain][]int // player IDs, recomputed by UpdateLargestShareholders
	second  map[Chain][]int
	logger  *log.Logger
}

// NewBank creates a bank holding the full pool of 25 shares per chain.
func NewBank(logger *log.Logger) *Bank {
	return &Bank{
		pool:    NewBankHoldings(),
		largest: make(map[Chain][]int, NumChains),
		second:  make(map[Chain][]int, NumChains),
		logger:  logger.WithPrefix("bank"),
	}
}

// StocksAvailable returns how many shares of the chain the bank can still
// sell. Inactive chains report 0.
func (b *Bank) StocksAvailable(chain Chain, chains *ChainManager) int {
	if !chains.IsActive(chain) {
		return 0
	}
	return b.pool.Get(chain)
}

// PoolSize returns the raw pool count regardless of chain activity.
func (b *Bank) PoolSize(chain Chain) int {
	return b.pool.Get(chain)
}

// StockPriceFor returns the current price of one share of the chain.
func StockPriceFor(chains *ChainManager, chain Chain) int {
	return StockPrice(chain.PriceLevel(), chains.ChainLength(chain))
}

// BuyStock sells one share of the chain to the player: pool -1, holding +1,
// cash -price.
func (b *Bank) BuyStock(chains *ChainManager, chain Chain, player *Player) error {
	if !chains.IsActive(chain) {
		return fmt.Errorf("buy %s: %w", chain, ErrChainNotActive)
	}
	if b.pool.Get(chain) == 0 {
		return fmt.Errorf("buy %s: %w", chain, ErrNoStockAvailable)
	}
	price := StockPriceFor(chains, chain)
	if price > player.Cash {
		return fmt.Errorf("buy %s for %d: %w", chain, price, ErrInsufficientFunds)
	}
	b.pool.Remove(chain, 1)
	player.Stock.Add(chain, 1)
	player.RemoveCash(price)
	b.logger.Debug("stock bought", "chain", chain, "player", player.Name, "price", price)
	return nil
}

// GiveBonusStock hands the player one free share, used for founder bonuses.
func (b *Bank) GiveBonusStock(chain Chain, player *Player) error {
	if b.pool.Get(chain) == 0 {
		return fmt.Errorf("bonus stock %s: %w", chain, ErrNoStockAvailable)
	}
	b.pool.Remove(chain, 1)
	player.Stock.Add(chain, 1)
	return nil
}

// SellStock buys shares back from the player at the given price each. Used
// during fusion stock resolution.
func (b *Bank) SellStock(chain Chain, amount, price int, player *Player) {
	player.Stock.Remove(chain, amount)
	b.pool.Add(chain, amount)
	player.AddCash(amount * price)
}

// TradeStock exchanges dead-chain shares 2-for-1 into the surviving chain.
// The trade is bounded by the bank's pool of the surviving chain.
func (b *Bank) TradeStock(dead, alive Chain, deadShares int, player *Player) int {
	aliveShares := deadShares / 2
	if pool := b.pool.Get(alive); aliveShares > pool {
		aliveShares = pool
	}
	player.Stock.Remove(dead, aliveShares*2)
	b.pool.Add(dead, aliveShares*2)
	player.Stock.Add(alive, aliveShares)
	b.pool.Remove(alive, aliveShares)
	return aliveShares
}

// UpdateLargestShareholders recomputes, per chain, which players hold the
// most shares and which hold the next-highest nonzero count.
//
// The tie policy is deliberate and intricate:
//   - several players tied for the maximum are ALL simultaneously largest
//     and second largest; no distinct second tier exists below them
//   - a single maximum holder is largest only, and every player tied at the
//     next value down is second largest
//   - a sole shareholder of a chain is both largest and second largest
func (b *Bank) UpdateLargestShareholders(players []*Player) {
	for _, chain := range Chains() {
		max, runnerUp := 0, 0
		for _, p := range players {
			held := p.Stock.Get(chain)
			if held > max {
				runnerUp = max
				max = held
			} else if held > runnerUp && held < max {
				runnerUp = held
			}
		}

		var largest, second []int
		if max == 0 {
			b.largest[chain] = nil
			b.second[chain] = nil
			continue
		}
		for _, p := range players {
			if p.Stock.Get(chain) == max {
				largest = append(largest, p.ID)
			}
		}
		switch {
		case len(largest) > 1:
			second = append(second, largest...)
		case runnerUp > 0:
			for _, p := range players {
				if p.Stock.Get(chain) == runnerUp {
					second = append(second, p.ID)
				}
			}
		default:
			// Sole shareholder takes both ranks.
			second = append(second, largest...)
		}
		b.largest[chain] = largest
		b.second[chain] = second
	}
}

// IsLargestShareholder reports membership in the last computed largest set.
func (b *Bank) IsLargestShareholder(playerID int, chain Chain) bool {
	return containsID(b.largest[chain], playerID)
}

// IsSecondLargestShareholder reports membership in the last computed second
// largest set.
func (b *Bank) IsSecondLargestShareholder(playerID int, chain Chain) bool {
	return containsID(b.second[chain], playerID)
}

// LargestShareholders returns the last computed largest set for a chain.
func (b *Bank) LargestShareholders(chain Chain) []int {
	return b.largest[chain]
}

// SecondLargestShareholders returns the last computed second largest set.
func (b *Bank) SecondLargestShareholders(chain Chain) []int {
	return b.second[chain]
}

// PayMajorityBonuses pays the majority shareholder bonuses for a chain at
// its current price: 10x one share for the largest, 5x for the second
// largest. Tied groups split the relevant pool, rounded up to the nearest
// hundred. Shareholder sets are recomputed from the live holdings first.
func (b *Bank) PayMajorityBonuses(players []*Player, chain Chain, chains *ChainManager) {
	b.UpdateLargestShareholders(players)
	price := StockPriceFor(chains, chain)
	largest := b.largest[chain]
	second := b.second[chain]
	if len(largest) == 0 {
		return
	}

	byID := make(map[int]*Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	if len(largest) > 1 {
		// A tie for first splits both pools; nobody else gets anything.
		share := roundUpTo100((price*10 + price*5) / len(largest))
		for _, id := range largest {
			byID[id].AddCash(share)
			b.logger.Info("majority bonus paid", "chain", chain, "player", byID[id].Name, "amount", share)
		}
		return
	}

	byID[largest[0]].AddCash(price * 10)
	b.logger.Info("majority bonus paid", "chain", chain, "player", byID[largest[0]].Name, "amount", price*10)
	if len(second) == 0 {
		return
	}
	share := roundUpTo100(price * 5 / len(second))
	for _, id := range second {
		byID[id].AddCash(share)
		b.logger.Info("second bonus paid", "chain", chain, "player", byID[id].Name, "amount", share)
	}
}

func roundUpTo100(amount int) int {
	return (amount + 99) / 100 * 100
}

func containsID(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
