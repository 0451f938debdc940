package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		length int
		tier   Tier
	}{
		{0, 0}, {1, 0},
		{2, 1}, {3, 2}, {4, 3}, {5, 4},
		{6, 5}, {10, 5},
		{11, 6}, {20, 6},
		{21, 7}, {30, 7},
		{31, 8}, {40, 8},
		{41, 9}, {100, 9},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, TierFor(tc.length), "length %d", tc.length)
	}
}

func TestStockPrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level  PriceLevel
		length int
		price  int
	}{
		{PriceLow, 0, 0},
		{PriceLow, 1, 0},
		{PriceLow, 2, 200},
		{PriceLow, 3, 300},
		{PriceLow, 40, 900},
		{PriceLow, 41, 1000},
		{PriceMedium, 2, 300},
		{PriceMedium, 4, 500},
		{PriceMedium, 20, 800},
		{PriceMedium, 41, 1100},
		{PriceHigh, 2, 400},
		{PriceHigh, 4, 600},
		{PriceHigh, 20, 900},
		{PriceHigh, 41, 1200},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.price, StockPrice(tc.level, tc.length),
			"level %d length %d", tc.level, tc.length)
	}
}

func TestChainPriceLevels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriceLow, Airport.PriceLevel())
	assert.Equal(t, PriceLow, Festival.PriceLevel())
	assert.Equal(t, PriceMedium, Imperial.PriceLevel())
	assert.Equal(t, PriceMedium, Luxor.PriceLevel())
	assert.Equal(t, PriceMedium, Oriental.PriceLevel())
	assert.Equal(t, PriceHigh, Continental.PriceLevel())
	assert.Equal(t, PriceHigh, Prestige.PriceLevel())
}

func TestParseChain(t *testing.T) {
	t.Parallel()

	for _, chain := range Chains() {
		parsed, ok := ParseChain(chain.Identifier())
		assert.True(t, ok)
		assert.Equal(t, chain, parsed)
	}
	_, ok := ParseChain('X')
	assert.False(t, ok)
}
