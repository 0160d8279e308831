package engine

import (
	"fmt"

	"go.uber.org/zap"
)

// IsValidMove reports whether stone i can step in direction d: the target must
// be on the board and not occupied by any stone. An invalid index is a
// programming error and yields ErrIndexOutOfRange.
func (gs *GameState) IsValidMove(i int, d Direction) (bool, error) {
	if err := gs.checkIndex(i); err != nil {
		return false, err
	}
	if !d.valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	target := gs.stones[i].position.MoveTo(d)
	if !gs.board.Contains(target) {
		return false, nil
	}
	return !gs.IsOccupied(target), nil
}

// ValidMoves returns every direction stone i can legally step in, in
// Directions order.
func (gs *GameState) ValidMoves(i int) ([]Direction, error) {
	if err := gs.checkIndex(i); err != nil {
		return nil, err
	}
	var moves []Direction
	for _, d := range Directions {
		if ok, _ := gs.IsValidMove(i, d); ok {
			moves = append(moves, d)
		}
	}
	return moves, nil
}

// Destinations returns the cells stone i can move to, in Directions order.
func (gs *GameState) Destinations(i int) ([]Position, error) {
	moves, err := gs.ValidMoves(i)
	if err != nil {
		return nil, err
	}
	from := gs.stones[i].position
	cells := make([]Position, 0, len(moves))
	for _, d := range moves {
		cells = append(cells, from.MoveTo(d))
	}
	return cells, nil
}

// HasValidMove reports whether any stone of side can move.
func (gs *GameState) HasValidMove(side Side) bool {
	for i, stone := range gs.stones {
		if stone.side != side {
			continue
		}
		if moves, _ := gs.ValidMoves(i); len(moves) > 0 {
			return true
		}
	}
	return false
}

// ApplyMove moves stone i one step in direction d and notifies observers.
// Callers are expected to have checked IsValidMove; an illegal move is
// rejected with ErrIllegalMove and leaves the state untouched.
func (gs *GameState) ApplyMove(i int, d Direction) error {
	ok, err := gs.IsValidMove(i, d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	if !ok {
		from := gs.stones[i].position
		return fmt.Errorf("%w: stone %d cannot move %s from %s to %s",
			ErrIllegalMove, i, d, from, from.MoveTo(d))
	}

	from := gs.stones[i].position
	gs.stones[i].moveTo(d)
	to := gs.stones[i].position

	gs.logger.Debug("stone moved",
		zap.Int("stone", i),
		zap.Stringer("side", gs.stones[i].side),
		zap.Stringer("from", from),
		zap.Stringer("to", to))

	for _, o := range gs.observers {
		o.OnStoneMoved(i, from, to)
	}
	return nil
}

// CheckWinner reports whether mover has won: every one of mover's stones
// stands on a cell of the opponent's starting formation. Only the side that
// has just moved can newly meet this condition. The side is only meaningful
// when the bool is true; otherwise it is the zero Side.
func (gs *GameState) CheckWinner(mover Side) (Side, bool) {
	var none Side
	if mover != First && mover != Second {
		return none, false
	}
	target := make(map[Position]bool, len(gs.initial[mover.Opponent()]))
	for _, p := range gs.initial[mover.Opponent()] {
		target[p] = true
	}

	count := 0
	for _, stone := range gs.stones {
		if stone.side != mover {
			continue
		}
		if !target[stone.position] {
			return none, false
		}
		count++
	}
	if count == 0 {
		return none, false
	}
	return mover, true
}
