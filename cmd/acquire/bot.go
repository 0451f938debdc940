package main

import (
	"github.com/lox/acquire/cmd/acquire/shared"
	"github.com/lox/acquire/internal/client"
)

// BotCmd joins a hosted game as an automatic player.
type BotCmd struct {
	URL      string `kong:"default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Name     string `kong:"default='bot',help='Player name'"`
	LogLevel string `kong:"default='info',help='Log level'"`
}

func (c *BotCmd) Run() error {
	logger := shared.SetupLogger(c.LogLevel)
	ctx := shared.SetupSignalHandler(logger)

	conn, err := client.Dial(ctx, c.URL, c.Name, client.NewAutoPlayer(logger), logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	return conn.Run(ctx)
}
