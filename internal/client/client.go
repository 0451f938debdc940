// Package client connects to an acquire server and relays the game to a
// Handler, which supplies the player's decisions. The TUI and the built-in
// auto player are both Handlers.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/acquire/internal/server"
)

// Handler receives game updates and answers the server's questions. All
// methods are called from the client's read loop, one at a time.
type Handler interface {
	// HandleWelcome is called once after joining.
	HandleWelcome(server.WelcomeData)
	// HandleGameStarted is called when all seats are filled.
	HandleGameStarted(server.GameStartedData)
	// HandleState is called with a fresh snapshot after every game event.
	HandleState(server.GameStateData)
	// HandleHand is called with the player's private hand.
	HandleHand(server.HandData)
	// HandleEvent is called for every game event.
	HandleEvent(server.GameEventData)
	// Decide answers one question. The returned decision is sent back with
	// the matching request ID filled in by the client.
	Decide(server.ActionRequiredData) (server.DecisionData, error)
	// HandleGameOver is called once when the game concludes.
	HandleGameOver(server.GameOverData)
	// HandleError is called for server-reported errors.
	HandleError(server.ErrorData)
}

// Client is one connected player.
type Client struct {
	conn    *websocket.Conn
	name    string
	handler Handler
	logger  *log.Logger
}

// Dial connects to the server's /ws endpoint and joins as name.
func Dial(ctx context.Context, url, name string, handler Handler, logger *log.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Client{
		conn:    conn,
		name:    name,
		handler: handler,
		logger:  logger.WithPrefix("client"),
	}
	if err := c.send(server.MessageTypeJoin, server.JoinData{PlayerName: name}, ""); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(messageType server.MessageType, data any, requestID string) error {
	msg, err := server.NewMessage(messageType, data)
	if err != nil {
		return err
	}
	msg.RequestID = requestID
	return c.conn.WriteJSON(msg)
}

// Run reads messages until the game is over, the context is cancelled, or
// the connection drops. A normal game end returns nil.
func (c *Client) Run(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- c.loop() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = c.conn.Close()
		return ctx.Err()
	}
}

func (c *Client) loop() error {
	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		over, err := c.dispatch(&msg)
		if err != nil {
			return err
		}
		if over {
			return nil
		}
	}
}

func (c *Client) dispatch(msg *server.Message) (over bool, err error) {
	switch msg.Type {
	case server.MessageTypeWelcome:
		var data server.WelcomeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.logger.Info("joined game", "game", data.GameID, "seat", data.Seat)
		c.handler.HandleWelcome(data)

	case server.MessageTypeGameStarted:
		var data server.GameStartedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleGameStarted(data)

	case server.MessageTypeGameState:
		var data server.GameStateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleState(data)

	case server.MessageTypeHand:
		var data server.HandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleHand(data)

	case server.MessageTypeGameEvent:
		var data server.GameEventData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleEvent(data)

	case server.MessageTypeActionRequired:
		var data server.ActionRequiredData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		answer, err := c.handler.Decide(data)
		if err != nil {
			return false, fmt.Errorf("decide %s: %w", data.Decision, err)
		}
		answer.RequestID = msg.RequestID
		if err := c.send(server.MessageTypeDecision, answer, msg.RequestID); err != nil {
			return false, err
		}

	case server.MessageTypeGameOver:
		var data server.GameOverData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleGameOver(data)
		return true, nil

	case server.MessageTypeError:
		var data server.ErrorData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return false, err
		}
		c.handler.HandleError(data)

	default:
		c.logger.Warn("unknown message", "type", msg.Type)
	}
	return false, nil
}
