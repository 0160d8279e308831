// Command analyze prints quick, human-readable heuristics about the layouts
// in a layout directory (the current directory when none is given). For each
// side it reports opening mobility, the parity split of its stones against
// the formation it has to fill, and a lower bound on the moves a win takes.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/mcp-training/hoppingstones/game/config"
	"github.com/wricardo/mcp-training/hoppingstones/game/engine"
)

func main() {
	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes every layout the manager finds in dir, built-ins included
func run(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir, nil)
	if err != nil {
		return err
	}

	layouts, err := manager.ListConfigs()
	if err != nil {
		return fmt.Errorf("failed to list layouts: %w", err)
	}

	for _, info := range layouts {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.ConfigID)
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "Error loading layout: %v\n", err)
			continue
		}
		analyzeConfig(w, cfg)
	}
	return nil
}

func analyzeConfig(w io.Writer, cfg *engine.GameConfig) {
	state, err := engine.NewGameStateFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(w, "Error building game: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Name: %s\n", cfg.Name)
	fmt.Fprintf(w, "Board Size: %d x %d\n", cfg.BoardSize, cfg.BoardSize)
	fmt.Fprintf(w, "Stones Per Side: %d\n", engine.CountStones(cfg, engine.First))

	for _, side := range []engine.Side{engine.First, engine.Second} {
		even, odd := engine.ParityCounts(state, side)
		targets := state.InitialPositions(side.Opponent())

		fmt.Fprintf(w, "%s: %d opening moves, %d even / %d odd stones\n", side, engine.Mobility(state, side), even, odd)

		if !engine.IsWinnable(state, side) {
			fmt.Fprintf(w, "⚠️  WARNING: %s can never fill the %s formation (parity mismatch)\n", side, side.Opponent())
			continue
		}
		fmt.Fprintf(w, "✅ %s needs at least %d moves to win\n", side, minMovesToWin(state.PositionsOfSide(side), targets))
	}

	if !state.HasValidMove(engine.First) {
		fmt.Fprintf(w, "⚠️  CRITICAL: first has no legal opening move\n")
	}
}

// minMovesToWin is a lower bound on the moves needed to bring every stone
// onto some target cell: each stone is charged its distance to the nearest
// target it can ever reach.
func minMovesToWin(stones, targets []engine.Position) int {
	total := 0
	for _, s := range stones {
		best := -1
		for _, t := range targets {
			d, ok := diagonalDistance(s, t)
			if ok && (best < 0 || d < best) {
				best = d
			}
		}
		if best > 0 {
			total += best
		}
	}
	return total
}

// diagonalDistance is the number of diagonal steps from a to b on an empty
// board. Cells of different parity are never reachable.
func diagonalDistance(a, b engine.Position) (int, bool) {
	if engine.ParityClass(a) != engine.ParityClass(b) {
		return 0, false
	}
	dr, dc := abs(a.Row-b.Row), abs(a.Col-b.Col)
	if dr > dc {
		return dr, true
	}
	return dc, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
