// Package engine provides the rules engine for the Hopping Stones game.
//
// The engine package implements the game mechanics including:
//   - Diagonal single-step movement and collision detection
//   - Turn alternation between the First and Second sides
//   - The two-phase (stone, then destination) selection state machine
//   - Win detection by swapping camps
//   - Layout loading and validation
//
// Core Types:
//
// GameState owns the stones and answers every legality question. Controller
// turns raw cell clicks into moves against a GameState and tracks whose turn
// it is. GameEngine bundles a layout, its GameState and its Controller, and
// records the move history.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Subscribe(engine.ObserverFuncs{
//		StoneMoved: func(i int, from, to engine.Position) { ... },
//	})
//
//	eng.OnCellClicked(0, 0) // pick the stone at (0,0)
//	eng.OnCellClicked(1, 1) // move it to (1,1)
//
// Game Rules:
//
// Each side starts with its stones along its own edge of a 5x5 board. On its
// turn a side moves one stone a single step diagonally onto an empty cell. A
// side wins when all of its stones stand on the cells the opposing side
// started from.
package engine
