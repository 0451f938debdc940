package server

import (
	"encoding/json"
	"time"

	"github.com/lox/acquire/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client to server messages
	MessageTypeJoin     MessageType = "join"
	MessageTypeDecision MessageType = "decision"

	// Server to client messages
	MessageTypeWelcome        MessageType = "welcome"
	MessageTypeError          MessageType = "error"
	MessageTypeGameStarted    MessageType = "game_started"
	MessageTypeGameState      MessageType = "game_state"
	MessageTypeHand           MessageType = "hand"
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypeGameEvent      MessageType = "game_event"
	MessageTypeGameOver       MessageType = "game_over"
)

func (mt MessageType) String() string { return string(mt) }

// Message is the wire envelope all traffic uses.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope stamped with the current time.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// DecisionKind says which question an action_required message is asking.
type DecisionKind string

const (
	DecideCard     DecisionKind = "choose_card"
	DecideChain    DecisionKind = "choose_chain"
	DecideSurvivor DecisionKind = "choose_survivor"
	DecideStock    DecisionKind = "resolve_stock"
	DecideBuy      DecisionKind = "buy_stocks"
	DecideEnd      DecisionKind = "confirm_end"
)

// Client → Server

type JoinData struct {
	PlayerName string `json:"playerName"`
}

// DecisionData answers an action_required message. Which fields matter
// depends on the kind being answered.
type DecisionData struct {
	RequestID string   `json:"requestId"`
	CardIndex int      `json:"cardIndex,omitempty"`
	Chain     string   `json:"chain,omitempty"`
	Chains    []string `json:"chains,omitempty"`
	Sell      int      `json:"sell,omitempty"`
	Trade     int      `json:"trade,omitempty"`
	Accept    bool     `json:"accept,omitempty"`
}

// Server → Client

type WelcomeData struct {
	GameID string `json:"gameId"`
	Seat   int    `json:"seat"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GameStartedData struct {
	GameID  string   `json:"gameId"`
	Players []string `json:"players"`
}

type GameStateData struct {
	State *game.Snapshot `json:"state"`
}

// CardInfo describes one hand card and what playing it would do.
type CardInfo struct {
	Position string `json:"position"`
	Kind     string `json:"kind"`
	Chain    string `json:"chain,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type HandData struct {
	Cards []CardInfo `json:"cards"`
}

// ActionRequiredData asks the client one question. Exactly one of the
// option sets is populated, matching Decision.
type ActionRequiredData struct {
	Decision DecisionKind   `json:"decision"`
	State    *game.Snapshot `json:"state"`
	Cards    []CardInfo     `json:"cards,omitempty"`
	Chains   []string       `json:"chains,omitempty"`
	Dead     string         `json:"dead,omitempty"`
	Alive    string         `json:"alive,omitempty"`
	Held     int            `json:"held,omitempty"`
	Price    int            `json:"price,omitempty"`
	Max      int            `json:"max,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

type GameEventData struct {
	Event    string   `json:"event"`
	Player   string   `json:"player,omitempty"`
	Position string   `json:"position,omitempty"`
	Chain    string   `json:"chain,omitempty"`
	Chains   []string `json:"chains,omitempty"`
	Count    int      `json:"count,omitempty"`
	Round    int      `json:"round,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

type GameOverData struct {
	Reason string         `json:"reason"`
	State  *game.Snapshot `json:"state"`
}

// Conversions between engine types and wire types.

func CardInfoFromGame(card game.AnalyzedCard) CardInfo {
	info := CardInfo{
		Position: card.Position.String(),
		Kind:     card.Placement.Kind.String(),
	}
	switch card.Placement.Kind {
	case game.PlaceExtendsChain:
		info.Chain = card.Placement.Chain.Name()
	case game.PlaceIllegal:
		info.Reason = card.Placement.Reason.Description()
	}
	return info
}

func chainNames(chains []game.Chain) []string {
	names := make([]string, len(chains))
	for i, chain := range chains {
		names[i] = chain.Name()
	}
	return names
}

func chainByName(name string) (game.Chain, bool) {
	for _, chain := range game.Chains() {
		if chain.Name() == name {
			return chain, true
		}
	}
	return 0, false
}

func GameEventDataFromGame(event game.Event) GameEventData {
	data := GameEventData{
		Event:  string(event.Type),
		Player: event.Player,
		Count:  event.Count,
		Round:  event.Round,
		Reason: event.Reason,
	}
	if event.Position.Valid() {
		data.Position = event.Position.String()
	}
	switch event.Type {
	case game.EventChainFounded, game.EventChainExtended, game.EventStockPurchased:
		data.Chain = event.Chain.Name()
	case game.EventChainsFused:
		data.Chain = event.Chain.Name()
		data.Chains = chainNames(event.Chains)
	}
	return data
}
