package game

import (
	"github.com/lox/acquire/internal/deck"
)

// EventType identifies a game event.
type EventType string

const (
	EventTilePlaced     EventType = "tile_placed"
	EventChainFounded   EventType = "chain_founded"
	EventChainExtended  EventType = "chain_extended"
	EventChainsFused    EventType = "chains_fused"
	EventStockPurchased EventType = "stock_purchased"
	EventRoundStarted   EventType = "round_started"
	EventGameEnded      EventType = "game_ended"
)

// Event is something that happened during a turn. Subscribers receive
// events synchronously on the turn loop's goroutine.
type Event struct {
	Type     EventType
	Player   string
	Position deck.Position
	Chain    Chain
	Chains   []Chain
	Count    int
	Round    int
	Reason   string
}

// EventBus fans game events out to subscribers. The engine publishes after
// every state mutation so presentation layers can re-render.
type EventBus struct {
	subscribers []func(Event)
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for all events. Not safe to call while the
// engine is running; subscribe before Run.
func (b *EventBus) Subscribe(fn func(Event)) {
	b.subscribers = append(b.subscribers, fn)
}

// Publish delivers the event to every subscriber in order.
func (b *EventBus) Publish(event Event) {
	for _, fn := range b.subscribers {
		fn(event)
	}
}
