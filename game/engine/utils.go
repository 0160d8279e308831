package engine

// CountStones counts the stones of side in a layout
func CountStones(config *GameConfig, side Side) int {
	char := FirstCell
	if side == Second {
		char = SecondCell
	}
	count := 0
	for _, row := range config.Layout {
		for _, cell := range row {
			if cell == char {
				count++
			}
		}
	}
	return count
}

// Mobility returns the total number of legal moves available to side
func Mobility(state *GameState, side Side) int {
	total := 0
	for i, stone := range state.stones {
		if stone.side != side {
			continue
		}
		moves, _ := state.ValidMoves(i)
		total += len(moves)
	}
	return total
}

// ParityClass returns 0 for cells where row+col is even and 1 otherwise.
// Diagonal steps never change a stone's parity class.
func ParityClass(p Position) int {
	return ((p.Row+p.Col)%2 + 2) % 2
}

// ParityCounts returns how many of side's stones stand on even and odd cells
func ParityCounts(state *GameState, side Side) (even, odd int) {
	for _, p := range state.PositionsOfSide(side) {
		if ParityClass(p) == 0 {
			even++
		} else {
			odd++
		}
	}
	return even, odd
}

// IsWinnable reports whether side can, by parity alone, fill the opponent's
// starting formation: the formation must have as many even and odd cells as
// side has stones on even and odd cells.
func IsWinnable(state *GameState, side Side) bool {
	even, odd := ParityCounts(state, side)
	targetEven, targetOdd := 0, 0
	for _, p := range state.InitialPositions(side.Opponent()) {
		if ParityClass(p) == 0 {
			targetEven++
		} else {
			targetOdd++
		}
	}
	return even == targetEven && odd == targetOdd
}
