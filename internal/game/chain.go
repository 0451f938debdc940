package game

import "fmt"

// Chain identifies one of the seven fixed hotel chains.
type Chain int

const (
	Airport Chain = iota
	Continental
	Festival
	Imperial
	Luxor
	Oriental
	Prestige

	// NumChains is the number of chain identities in the game.
	NumChains = 7
)

// Chains returns all chain identities in display order.
func Chains() []Chain {
	return []Chain{Airport, Continental, Festival, Imperial, Luxor, Oriental, Prestige}
}

// Name returns the chain's display name.
func (c Chain) Name() string {
	switch c {
	case Airport:
		return "Airport"
	case Continental:
		return "Continental"
	case Festival:
		return "Festival"
	case Imperial:
		return "Imperial"
	case Luxor:
		return "Luxor"
	case Oriental:
		return "Oriental"
	case Prestige:
		return "Prestige"
	default:
		return fmt.Sprintf("Chain(%d)", int(c))
	}
}

func (c Chain) String() string { return c.Name() }

// Identifier returns the single-letter identifier shown on the board.
func (c Chain) Identifier() byte {
	switch c {
	case Airport:
		return 'A'
	case Continental:
		return 'C'
	case Festival:
		return 'F'
	case Imperial:
		return 'I'
	case Luxor:
		return 'L'
	case Oriental:
		return 'O'
	case Prestige:
		return 'P'
	default:
		return '?'
	}
}

// ParseChain resolves a single-letter identifier to a chain.
func ParseChain(identifier byte) (Chain, bool) {
	for _, c := range Chains() {
		if c.Identifier() == identifier {
			return c, true
		}
	}
	return 0, false
}

// Color returns the chain's fixed RGB color. Presentation metadata only,
// never consulted by the rules.
func (c Chain) Color() (r, g, b uint8) {
	switch c {
	case Airport:
		return 107, 141, 165
	case Continental:
		return 32, 64, 136
	case Festival:
		return 12, 106, 88
	case Imperial:
		return 198, 83, 80
	case Luxor:
		return 231, 219, 0
	case Oriental:
		return 184, 96, 20
	case Prestige:
		return 99, 47, 107
	default:
		return 255, 255, 255
	}
}

// PriceLevel selects which column of the price table a chain uses. Different
// chains have different base price curves.
type PriceLevel int

const (
	PriceLow PriceLevel = iota
	PriceMedium
	PriceHigh
)

// PriceLevel returns the chain's fixed price level.
func (c Chain) PriceLevel() PriceLevel {
	switch c {
	case Airport, Festival:
		return PriceLow
	case Imperial, Luxor, Oriental:
		return PriceMedium
	case Continental, Prestige:
		return PriceHigh
	default:
		return PriceLow
	}
}
