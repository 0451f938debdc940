package main

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/acquire/cmd/acquire/shared"
	"github.com/lox/acquire/internal/client"
	"github.com/lox/acquire/internal/tui"
)

// ClientCmd joins a hosted game with the interactive TUI.
type ClientCmd struct {
	URL  string `kong:"default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Name string `kong:"required,help='Player name'"`
}

func (c *ClientCmd) Run() error {
	// The TUI owns the terminal; everything else stays quiet.
	logger := log.New(io.Discard)

	model := tui.NewModel(c.Name)
	program := tea.NewProgram(model, tea.WithAltScreen())
	handler := tui.NewHandler(program)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler(logger))
	defer cancel()

	conn, err := client.Dial(ctx, c.URL, c.Name, handler, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	clientErr := make(chan error, 1)
	go func() {
		clientErr <- conn.Run(ctx)
	}()

	_, err = program.Run()
	cancel()
	if err != nil {
		return err
	}

	// Surface a connection failure, but a cancelled run just means the
	// player quit the TUI.
	if runErr := <-clientErr; runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
