package deck

import (
	rand "math/rand/v2"
)

// Pile is the face-down stack of position cards players draw from. A fresh
// pile holds one card per board cell (108 total).
type Pile struct {
	cards []Position
}

// NewPile creates a shuffled pile. Pass a seeded *rand.Rand for
// deterministic ordering in tests; see randutil.New.
func NewPile(rng *rand.Rand) *Pile {
	cards := AllPositions()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Pile{cards: cards}
}

// Draw removes and returns the top card. ok is false once the pile is empty.
func (p *Pile) Draw() (Position, bool) {
	if len(p.cards) == 0 {
		return Position{}, false
	}
	card := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return card, true
}

// DrawN draws up to n cards.
func (p *Pile) DrawN(n int) []Position {
	drawn := make([]Position, 0, n)
	for range n {
		card, ok := p.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, card)
	}
	return drawn
}

// Remaining returns how many cards are left to draw.
func (p *Pile) Remaining() int {
	return len(p.cards)
}
