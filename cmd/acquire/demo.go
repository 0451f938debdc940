package main

import (
	"fmt"
	"time"

	"github.com/lox/acquire/cmd/acquire/shared"
	"github.com/lox/acquire/internal/display"
	"github.com/lox/acquire/internal/game"
	"github.com/lox/acquire/internal/randutil"
)

// DemoCmd runs a complete local game between scripted players and prints
// the board as it evolves. Handy for eyeballing the rules engine.
type DemoCmd struct {
	Players  int    `kong:"default='3',help='Number of players (2-6)'"`
	Seed     int64  `kong:"help='Deterministic shuffle seed (optional)'"`
	Watch    bool   `kong:"help='Print the board after every round'"`
	LogLevel string `kong:"default='warn',help='Log level'"`
}

func (c *DemoCmd) Run() error {
	logger := shared.SetupLogger(c.LogLevel)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	names := make([]string, c.Players)
	agents := make([]game.Agent, c.Players)
	for i := range names {
		names[i] = fmt.Sprintf("player%d", i+1)
		agents[i] = &game.ScriptedAgent{EndGame: true}
	}

	engine, err := game.NewEngine(names, agents, logger, randutil.New(seed))
	if err != nil {
		return err
	}

	renderer := display.NewRenderer()
	if c.Watch {
		engine.Events().Subscribe(func(event game.Event) {
			if event.Type != game.EventRoundStarted {
				return
			}
			fmt.Println(renderer.Game(engine.Snapshot()))
		})
	}

	fmt.Printf("seed %d\n\n", seed)
	if err := engine.Run(); err != nil {
		return err
	}
	fmt.Println(renderer.Game(engine.Snapshot()))
	return nil
}
