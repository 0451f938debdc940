package game

// StocksPerChain is the size of each chain's full stock pool.
const StocksPerChain = 25

// Holdings counts shares per chain, either a player's portfolio or the
// bank's remaining pool.
type Holdings [NumChains]int

// NewBankHoldings returns a full pool of 25 shares per chain.
func NewBankHoldings() Holdings {
	var h Holdings
	for i := range h {
		h[i] = StocksPerChain
	}
	return h
}

// Get returns the share count for a chain.
func (h *Holdings) Get(chain Chain) int { return h[chain] }

// Add increases the share count for a chain.
func (h *Holdings) Add(chain Chain, amount int) { h[chain] += amount }

// Remove decreases the share count for a chain.
func (h *Holdings) Remove(chain Chain, amount int) { h[chain] -= amount }

// Set overwrites the share count for a chain.
func (h *Holdings) Set(chain Chain, amount int) { h[chain] = amount }

// Tier is a bucketed chain-size range used to select the stock price.
type Tier int

// TierFor maps a chain length to its pricing bucket:
// 0, 2, 3, 4, 5, 6-10, 11-20, 21-30, 31-40, 41+.
func TierFor(length int) Tier {
	switch {
	case length < 2:
		return 0
	case length == 2:
		return 1
	case length == 3:
		return 2
	case length == 4:
		return 3
	case length == 5:
		return 4
	case length <= 10:
		return 5
	case length <= 20:
		return 6
	case length <= 30:
		return 7
	case length <= 40:
		return 8
	default:
		return 9
	}
}

// basePrices is the single-stock price ladder. A chain's price level shifts
// its tier up the ladder by 0, 1 or 2 steps.
var basePrices = [11]int{200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100, 1200}

// StockPrice returns the price of one share for a chain of the given length.
// Stock of a chain with fewer than two buildings is worth nothing.
func StockPrice(level PriceLevel, length int) int {
	tier := TierFor(length)
	if tier == 0 {
		return 0
	}
	return basePrices[int(tier)-1+int(level)]
}
