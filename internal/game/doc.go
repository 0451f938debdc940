// Package game implements the core rules engine for the board game Acquire:
// the board adjacency/ownership model, the hotel chain lifecycle (founding,
// growth, fusion), the stock bank with majority-shareholder tracking, and
// the placement classifier that decides what playing a given card legally
// does.
//
// The main type is Engine, which owns the shared mutable state (Board,
// ChainManager, Bank, players) and sequences rounds. Player decisions are
// requested through the Agent interface, so local, scripted and remote
// players all drive the same single-threaded turn loop.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e, err := game.NewEngine([]string{"Alice", "Bob"}, agents, logger, rng)
//	if err != nil {
//	    return err
//	}
//	err = e.Run()
//
// # Architecture
//
// Engine delegates to specialized components:
//   - Board: cell occupancy, no knowledge of game rules beyond ownership
//   - ChainManager: chain records, growth and fusion, size/safety queries
//   - Bank: stock pool, pricing, purchases, majority shareholder bonuses
//   - AnalyzePosition: pure classification of a candidate placement
//
// Mutation is strictly single-threaded: exactly one turn is resolved at a
// time, and remote input blocks the loop until it arrives.
package game
