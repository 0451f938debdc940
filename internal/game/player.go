package game

import (
	"sort"

	"github.com/lox/acquire/internal/deck"
)

// StartingCash is every player's opening balance.
const StartingCash = 6000

// CardsPerHand is the number of position cards a player holds.
const CardsPerHand = 6

// Player holds one seat's cash, stock portfolio and hand of position cards.
type Player struct {
	ID    int
	Name  string
	Cash  int
	Stock Holdings
	Cards []deck.Position

	// analyzed mirrors Cards with each card's current classification.
	// Refreshed at the start of the player's turn.
	analyzed []AnalyzedCard
}

// AnalyzedCard pairs a hand card with what playing it would currently do.
type AnalyzedCard struct {
	Position  deck.Position
	Placement Placement
}

// NewPlayer creates a player with the starting cash and the given hand.
func NewPlayer(id int, name string, cards []deck.Position) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Cash:  StartingCash,
		Cards: cards,
	}
}

// AddCash credits the player.
func (p *Player) AddCash(amount int) { p.Cash += amount }

// RemoveCash debits the player.
func (p *Player) RemoveCash(amount int) { p.Cash -= amount }

// SortedCards returns a row-major sorted copy of the hand.
func (p *Player) SortedCards() []deck.Position {
	cards := make([]deck.Position, len(p.Cards))
	copy(cards, p.Cards)
	sort.Slice(cards, func(i, j int) bool { return cards[i].Less(cards[j]) })
	return cards
}

// RemoveCard takes a card out of the hand. Returns false if the player does
// not hold it.
func (p *Player) RemoveCard(pos deck.Position) bool {
	for i, card := range p.Cards {
		if card == pos {
			p.Cards = append(p.Cards[:i], p.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// AnalyzeCards refreshes the classification of every hand card against the
// current board and chain state.
func (p *Player) AnalyzeCards(board *Board, chains *ChainManager) {
	p.analyzed = p.analyzed[:0]
	for _, card := range p.SortedCards() {
		p.analyzed = append(p.analyzed, AnalyzedCard{
			Position:  card,
			Placement: AnalyzePosition(card, board, chains),
		})
	}
}

// AnalyzedCards returns the hand as classified by the last AnalyzeCards.
func (p *Player) AnalyzedCards() []AnalyzedCard {
	return p.analyzed
}

// PlayableCards returns the analyzed cards that are legal to play.
func (p *Player) PlayableCards() []AnalyzedCard {
	var playable []AnalyzedCard
	for _, card := range p.analyzed {
		if card.Placement.Kind != PlaceIllegal {
			playable = append(playable, card)
		}
	}
	return playable
}

// OnlyIllegalCards reports whether no hand card can legally be played.
func (p *Player) OnlyIllegalCards() bool {
	return len(p.Cards) > 0 && len(p.PlayableCards()) == 0
}
