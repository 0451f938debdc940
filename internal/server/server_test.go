package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/acquire/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestCardInfoFromGame(t *testing.T) {
	t.Parallel()

	card := game.AnalyzedCard{Placement: game.Placement{Kind: game.PlaceSingle}}
	info := CardInfoFromGame(card)
	assert.Equal(t, "SingleHotel", info.Kind)
	assert.Empty(t, info.Chain)

	card = game.AnalyzedCard{Placement: game.Placement{
		Kind:  game.PlaceExtendsChain,
		Chain: game.Luxor,
	}}
	info = CardInfoFromGame(card)
	assert.Equal(t, "ExtendsChain", info.Kind)
	assert.Equal(t, "Luxor", info.Chain)

	card = game.AnalyzedCard{Placement: game.Placement{
		Kind:   game.PlaceIllegal,
		Reason: game.FusionIllegal,
	}}
	info = CardInfoFromGame(card)
	assert.Equal(t, "Illegal", info.Kind)
	assert.NotEmpty(t, info.Reason)
}

func TestChainByName(t *testing.T) {
	t.Parallel()

	for _, chain := range game.Chains() {
		got, ok := chainByName(chain.Name())
		require.True(t, ok)
		assert.Equal(t, chain, got)
	}
	_, ok := chainByName("Monorail")
	assert.False(t, ok)
}

func TestNewServerDefaultsMissingGameBlock(t *testing.T) {
	t.Parallel()

	s := NewServer(&Config{Server: Settings{Address: "localhost", Port: 8080}}, testLogger())
	assert.Equal(t, DefaultConfig().Games[0], s.gameCfg)
}

// wireClient is a minimal scripted player used to exercise the full server
// path: it always plays the first offered option, never buys, and accepts
// the end of the game.
type wireClient struct {
	t    *testing.T
	conn *websocket.Conn
	name string
}

func dialClient(t *testing.T, url, name string) *wireClient {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return &wireClient{t: t, conn: conn, name: name}
}

func (c *wireClient) send(messageType MessageType, data any, requestID string) {
	msg, err := NewMessage(messageType, data)
	require.NoError(c.t, err)
	msg.RequestID = requestID
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

func (c *wireClient) join() {
	c.send(MessageTypeJoin, JoinData{PlayerName: c.name}, "")
}

// play answers every question until the game ends.
func (c *wireClient) play(done chan<- string) {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			done <- "read error: " + err.Error()
			return
		}

		switch msg.Type {
		case MessageTypeActionRequired:
			var data ActionRequiredData
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				done <- "bad action_required: " + err.Error()
				return
			}
			answer := DecisionData{RequestID: msg.RequestID}
			switch data.Decision {
			case DecideCard:
				answer.CardIndex = 0
			case DecideChain, DecideSurvivor:
				answer.Chain = data.Chains[0]
			case DecideStock:
				// Keep everything.
			case DecideBuy:
				// Buy nothing.
			case DecideEnd:
				answer.Accept = true
			}
			c.send(MessageTypeDecision, answer, "")

		case MessageTypeGameOver:
			done <- ""
			return

		case MessageTypeError:
			var data ErrorData
			_ = json.Unmarshal(msg.Data, &data)
			done <- "server error: " + data.Code + " " + data.Message
			return
		}
	}
}

func TestFullGameOverWebSocket(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Games[0].Players = 2
	cfg.Games[0].Seed = 7

	s := NewServer(cfg, testLogger())
	mux := httptest.NewServer(s.Handler())
	defer mux.Close()

	alice := dialClient(t, mux.URL, "alice")
	defer func() { _ = alice.conn.Close() }()
	bob := dialClient(t, mux.URL, "bob")
	defer func() { _ = bob.conn.Close() }()

	alice.join()
	bob.join()

	done := make(chan string, 2)
	go alice.play(done)
	go bob.play(done)

	for range 2 {
		select {
		case result := <-done:
			assert.Empty(t, result)
		case <-time.After(60 * time.Second):
			t.Fatal("game did not finish in time")
		}
	}
}

func TestJoinRejectsDuplicateName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Games[0].Players = 3

	s := NewServer(cfg, testLogger())
	mux := httptest.NewServer(s.Handler())
	defer mux.Close()

	alice := dialClient(t, mux.URL, "alice")
	defer func() { _ = alice.conn.Close() }()
	alice.join()

	var welcome Message
	require.NoError(t, alice.conn.ReadJSON(&welcome))
	assert.Equal(t, MessageTypeWelcome, welcome.Type)

	imposter := dialClient(t, mux.URL, "alice")
	defer func() { _ = imposter.conn.Close() }()
	imposter.join()

	var reply Message
	require.NoError(t, imposter.conn.ReadJSON(&reply))
	require.Equal(t, MessageTypeError, reply.Type)
	var data ErrorData
	require.NoError(t, json.Unmarshal(reply.Data, &data))
	assert.Equal(t, "name_taken", data.Code)
}
